package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

var (
	ErrNotFound            = errors.New("role not found")
	ErrInvalidName         = errors.New("role name is required")
	ErrInvalidLevel        = errors.New("role level must be between 1 and 3")
	ErrDuplicateName       = errors.New("role name already exists for this company")
	ErrReplacementRequired = errors.New("replacement role is required")
	ErrSameRole            = errors.New("replacement role must differ from the deleted role")
	ErrCompanyMismatch     = errors.New("replacement role belongs to a different company")
)

type Service interface {
	// WithTx returns a copy of the service whose statements run inside tx,
	// so callers can compose role operations into their own transactions.
	WithTx(tx *gorm.DB) Service
	List(ctx context.Context, companyID snowflake.ID) ([]Role, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Role, error)
	Create(ctx context.Context, req CreateRoleRequest) (*Role, error)
	Update(ctx context.Context, req UpdateRoleRequest) (*Role, error)
	// Delete removes a role after reassigning its employees to the
	// replacement role, both inside one transaction.
	Delete(ctx context.Context, roleID, replacementRoleID snowflake.ID) error
	ManagerRoles(ctx context.Context, companyID snowflake.ID) ([]Role, error)
	EnsureDefaults(ctx context.Context, companyID snowflake.ID) error
}

type CreateRoleRequest struct {
	CompanyID snowflake.ID
	RoleName  string
	RoleLevel int
}

type UpdateRoleRequest struct {
	RoleID    snowflake.ID
	RoleName  string
	RoleLevel int
}
