package branch

import (
	"github.com/staffdeck/staffdeck/internal/branch/repository"
	"github.com/staffdeck/staffdeck/internal/branch/service"
	"go.uber.org/fx"
)

var Module = fx.Module("branch.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
