package report

import (
	"github.com/staffdeck/staffdeck/internal/report/repository"
	"github.com/staffdeck/staffdeck/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
