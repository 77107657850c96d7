package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// ListFilter narrows employee listings. Zero values mean "no filter".
type ListFilter struct {
	CompanyID  snowflake.ID
	BranchID   snowflake.ID
	RoleLevel  int
	ActiveOnly bool
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, filter ListFilter) ([]EmployeeDetail, error)
	GetByID(ctx context.Context, id snowflake.ID) (*EmployeeDetail, error)
	FindByID(ctx context.Context, id snowflake.ID) (*Employee, error)
	FindByUsername(ctx context.Context, username string) (*Employee, error)
	Create(ctx context.Context, employee Employee) error
	UpdateStatus(ctx context.Context, id snowflake.ID, isActive bool) error
	UpdateRole(ctx context.Context, id, roleID snowflake.ID) error
	UpdateBranch(ctx context.Context, id, branchID snowflake.ID) error
	UpdatePassword(ctx context.Context, id snowflake.ID, passwordHash string) error
	UpdateProfile(ctx context.Context, id snowflake.ID, fullName, profilePicURL string) error
}
