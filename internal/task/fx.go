package task

import (
	"github.com/staffdeck/staffdeck/internal/task/repository"
	"github.com/staffdeck/staffdeck/internal/task/service"
	"go.uber.org/fx"
)

var Module = fx.Module("task.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
