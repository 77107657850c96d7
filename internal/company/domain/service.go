package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound          = errors.New("company not found")
	ErrInvalidName       = errors.New("company name is required")
	ErrInvalidUsername   = errors.New("username is required")
	ErrInvalidPassword   = errors.New("password is required")
	ErrDuplicateName     = errors.New("company name already exists")
	ErrDuplicateUsername = errors.New("username already taken")
	ErrWrongPassword     = errors.New("current password does not match")
)

type Service interface {
	Create(ctx context.Context, req CreateCompanyRequest) (*Company, error)
	List(ctx context.Context, activeOnly bool) ([]Company, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Company, error)
	UpdateProfile(ctx context.Context, req UpdateProfileRequest) error
	ResetPassword(ctx context.Context, id snowflake.ID, currentPassword, newPassword string) error
	SetStatus(ctx context.Context, id snowflake.ID, isActive bool) error
}

type CreateCompanyRequest struct {
	CompanyName   string
	Username      string
	Password      string
	ProfilePicURL string
}

type UpdateProfileRequest struct {
	CompanyID     snowflake.ID
	CompanyName   string
	ProfilePicURL string
}
