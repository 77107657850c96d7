package auth

import (
	"github.com/staffdeck/staffdeck/internal/auth/repository"
	"github.com/staffdeck/staffdeck/internal/auth/service"
	"go.uber.org/fx"
)

var Module = fx.Module("auth.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
