package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound              = errors.New("branch not found")
	ErrInvalidName           = errors.New("branch name is required")
	ErrDuplicateName         = errors.New("branch name already exists for this company")
	ErrParentRequired        = errors.New("sub-branch requires a parent branch")
	ErrParentNotFound        = errors.New("parent branch not found")
	ErrParentCompanyMismatch = errors.New("parent branch belongs to a different company")
	ErrParentInactive        = errors.New("parent branch is inactive")
	ErrParentSelf            = errors.New("branch cannot be its own parent")
)

type Service interface {
	CreateMain(ctx context.Context, req CreateBranchRequest) (*Branch, error)
	CreateSub(ctx context.Context, req CreateBranchRequest) (*Branch, error)
	ListAll(ctx context.Context) ([]BranchListItem, error)
	ListByCompany(ctx context.Context, companyID snowflake.ID) ([]BranchListItem, error)
	ListActive(ctx context.Context, companyID snowflake.ID) ([]Branch, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Branch, error)
	ParentCandidates(ctx context.Context, companyID, excludeID snowflake.ID) ([]Branch, error)
	SubBranches(ctx context.Context, parentBranchID snowflake.ID) ([]Branch, error)
	Update(ctx context.Context, req UpdateBranchRequest) error
	// SetStatus deactivates or reactivates a branch and its direct
	// employees. Sub-branches keep their own status.
	SetStatus(ctx context.Context, id snowflake.ID, isActive bool) error
	Employees(ctx context.Context, branchID snowflake.ID) ([]BranchEmployee, error)
	EmployeeCounts(ctx context.Context, companyID snowflake.ID) ([]BranchEmployeeCount, error)
}

type CreateBranchRequest struct {
	CompanyID      snowflake.ID
	ParentBranchID snowflake.ID
	BranchName     string
	Location       string
	BranchHead     string
}

type UpdateBranchRequest struct {
	BranchID       snowflake.ID
	BranchName     string
	Location       string
	BranchHead     string
	ParentBranchID snowflake.ID
}
