package role

import (
	"github.com/staffdeck/staffdeck/internal/role/repository"
	"github.com/staffdeck/staffdeck/internal/role/service"
	"go.uber.org/fx"
)

var Module = fx.Module("role.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
