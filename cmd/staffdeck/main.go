package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/config"
	"github.com/staffdeck/staffdeck/internal/migration"
	"github.com/staffdeck/staffdeck/internal/server"
	"github.com/staffdeck/staffdeck/pkg/db"
	"github.com/staffdeck/staffdeck/pkg/log"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		log.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,
		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
