package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
)

var (
	ErrNotFound          = errors.New("employee not found")
	ErrInvalidUsername   = errors.New("username is required")
	ErrInvalidPassword   = errors.New("password is required")
	ErrInvalidFullName   = errors.New("full name is required")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrWrongPassword     = errors.New("current password is incorrect")
	ErrPermissionDenied  = errors.New("actor is not permitted to perform this action")
	ErrBranchNotFound    = errors.New("branch not found")
	ErrRoleNotFound      = errors.New("role not found")
	ErrInactive          = errors.New("employee is inactive")
)

// CreateEmployeeRequest creates an account inside a branch. Actor is the
// authenticated caller; employee actors are gated by role level, company
// and admin actors are not.
type CreateEmployeeRequest struct {
	Actor         authdomain.Identity
	BranchID      snowflake.ID
	RoleID        snowflake.ID
	Username      string
	Password      string
	FullName      string
	ProfilePicURL string
}

type UpdateProfileRequest struct {
	EmployeeID    snowflake.ID
	FullName      string
	ProfilePicURL string
}

type ResetPasswordRequest struct {
	EmployeeID      snowflake.ID
	CurrentPassword string
	NewPassword     string
}

type Service interface {
	Create(ctx context.Context, req CreateEmployeeRequest) (*Employee, error)
	List(ctx context.Context, filter ListFilter) ([]EmployeeDetail, error)
	GetByID(ctx context.Context, id snowflake.ID) (*EmployeeDetail, error)
	SetStatus(ctx context.Context, actor authdomain.Identity, id snowflake.ID, isActive bool) error
	UpdateRole(ctx context.Context, id, roleID snowflake.ID) error
	UpdateBranch(ctx context.Context, id, branchID snowflake.ID) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
}
