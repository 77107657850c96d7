package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByCompany(ctx context.Context, companyID snowflake.ID) ([]Role, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Role, error)
	FindByName(ctx context.Context, companyID snowflake.ID, roleName string) (*Role, error)
	ManagerRoles(ctx context.Context, companyID snowflake.ID) ([]Role, error)
	CountByCompany(ctx context.Context, companyID snowflake.ID) (int64, error)
	Create(ctx context.Context, role Role) error
	Update(ctx context.Context, role Role) error
	Delete(ctx context.Context, id snowflake.ID) error
	ReassignEmployees(ctx context.Context, fromRoleID, toRoleID snowflake.ID) error
}
