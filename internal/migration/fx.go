package migration

import (
	"github.com/staffdeck/staffdeck/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB) error {
		sqlDB, err := conn.DB()
		if err != nil {
			return err
		}

		if err := RunMigrations(sqlDB); err != nil {
			return err
		}

		// Companies created before the role seeding existed get the default
		// role set backfilled here.
		return seed.EnsureDefaultRoles(conn)
	}),
)
