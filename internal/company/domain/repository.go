package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, activeOnly bool) ([]Company, error)
	GetByID(ctx context.Context, id snowflake.ID) (*Company, error)
	FindByName(ctx context.Context, companyName string) (*Company, error)
	FindByUsername(ctx context.Context, username string) (*Company, error)
	Create(ctx context.Context, company Company) error
	UpdateProfile(ctx context.Context, id snowflake.ID, companyName, profilePicURL string) error
	UpdatePassword(ctx context.Context, id snowflake.ID, passwordHash string) error
	// SetStatusCascade flips the company flag together with every branch of
	// the company and every employee of those branches.
	SetStatusCascade(ctx context.Context, id snowflake.ID, isActive bool) error
}
