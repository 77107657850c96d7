package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	"github.com/staffdeck/staffdeck/internal/policy"
	roledomain "github.com/staffdeck/staffdeck/internal/role/domain"
	"gorm.io/gorm"
)

// EnsureDefaultRoles backfills the default Manager / Asst. Manager /
// General Employee roles for every company missing them.
func EnsureDefaultRoles(db *gorm.DB) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var companies []companydomain.Company
		if err := tx.Find(&companies).Error; err != nil {
			return err
		}

		defaults := []struct {
			name  string
			level int
		}{
			{policy.NameManager, policy.LevelManager},
			{policy.NameAsstManager, policy.LevelAsstManager},
			{policy.NameGeneralEmployee, policy.LevelGeneralEmployee},
		}

		now := time.Now().UTC()
		for _, company := range companies {
			var count int64
			if err := tx.Model(&roledomain.Role{}).
				Where("company_id = ?", company.ID).
				Count(&count).Error; err != nil {
				return err
			}
			if count > 0 {
				continue
			}

			for _, d := range defaults {
				role := roledomain.Role{
					ID:        node.Generate(),
					CompanyID: company.ID,
					RoleName:  d.name,
					RoleLevel: d.level,
					CreatedAt: now,
				}
				if err := tx.Create(&role).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}
