package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListAll(ctx context.Context) ([]BranchListItem, error)
	ListByCompany(ctx context.Context, companyID snowflake.ID) ([]BranchListItem, error)
	ListActive(ctx context.Context, companyID snowflake.ID) ([]Branch, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Branch, error)
	FindByName(ctx context.Context, companyID snowflake.ID, branchName string) (*Branch, error)
	ParentCandidates(ctx context.Context, companyID, excludeID snowflake.ID) ([]Branch, error)
	SubBranches(ctx context.Context, parentBranchID snowflake.ID) ([]Branch, error)
	Employees(ctx context.Context, branchID snowflake.ID) ([]BranchEmployee, error)
	EmployeeCounts(ctx context.Context, companyID snowflake.ID) ([]BranchEmployeeCount, error)
	Create(ctx context.Context, branch Branch) error
	Update(ctx context.Context, branch Branch) error
	// SetStatusCascade flips the branch flag together with the branch's
	// direct employees. Sub-branches are left untouched.
	SetStatusCascade(ctx context.Context, id snowflake.ID, isActive bool) error
}
