package message

import (
	"github.com/staffdeck/staffdeck/internal/message/repository"
	"github.com/staffdeck/staffdeck/internal/message/service"
	"go.uber.org/fx"
)

var Module = fx.Module("message.service",
	fx.Provide(repository.NewRepository),
	fx.Provide(service.NewService),
)
