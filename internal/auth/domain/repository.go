package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// CompanyAuth is the credential row loaded for a company login attempt.
type CompanyAuth struct {
	ID            snowflake.ID
	CompanyName   string
	Username      string
	PasswordHash  string
	ProfilePicURL string
	IsActive      bool
}

// EmployeeAuth is the credential row loaded for an employee login attempt,
// joined through branch and company so the whole chain's status is known.
type EmployeeAuth struct {
	ID              snowflake.ID
	Username        string
	PasswordHash    string
	FullName        string
	ProfilePicURL   string
	IsActive        bool
	BranchID        snowflake.ID
	BranchName      string
	BranchIsActive  bool
	CompanyID       snowflake.ID
	CompanyName     string
	CompanyIsActive bool
	RoleID          snowflake.ID
	RoleName        string
	RoleLevel       int
}

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	FindCompanyByUsername(ctx context.Context, username string) (*CompanyAuth, error)
	FindEmployeeByUsername(ctx context.Context, username string) (*EmployeeAuth, error)
	FindCompanyByID(ctx context.Context, id snowflake.ID) (*CompanyAuth, error)
	FindEmployeeByID(ctx context.Context, id snowflake.ID) (*EmployeeAuth, error)

	CreateSession(ctx context.Context, session Session) error
	FindSessionByTokenHash(ctx context.Context, tokenHash string) (*Session, error)
	DeleteSession(ctx context.Context, id snowflake.ID) error
	DeleteExpiredSessions(ctx context.Context, now time.Time) error
}
