package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, message Message) error
	GetByID(ctx context.Context, id snowflake.ID) (*Message, error)
	MarkRead(ctx context.Context, id snowflake.ID) error
	AdminInbox(ctx context.Context) ([]InboxItem, error)
	CompanyThread(ctx context.Context, companyID snowflake.ID) ([]Message, error)
	MarkAdminMessagesRead(ctx context.Context, companyID snowflake.ID) error
	UnreadCountForAdmin(ctx context.Context) (int64, error)
	UnreadCountForCompany(ctx context.Context, companyID snowflake.ID) (int64, error)
}
