package company

import (
	"github.com/staffdeck/staffdeck/internal/company/repository"
	"github.com/staffdeck/staffdeck/internal/company/service"
	"go.uber.org/fx"
)

var Module = fx.Module("company.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
