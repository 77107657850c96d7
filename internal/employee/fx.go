package employee

import (
	"github.com/staffdeck/staffdeck/internal/employee/repository"
	"github.com/staffdeck/staffdeck/internal/employee/service"
	"go.uber.org/fx"
)

var Module = fx.Module("employee.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
