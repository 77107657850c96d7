package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

var (
	ErrNotFound        = errors.New("message not found")
	ErrInvalidText     = errors.New("message text is required")
	ErrInvalidEndpoint = errors.New("message endpoint is invalid")
	ErrSameSide        = errors.New("sender and receiver are the same side")
	ErrCompanyNotFound = errors.New("company endpoint not found")
)

type Service interface {
	Send(ctx context.Context, from, to Endpoint, text string) (*Message, error)
	MarkRead(ctx context.Context, id snowflake.ID) error
	AdminInbox(ctx context.Context) ([]InboxItem, error)
	// CompanyThread returns the company's conversation with the admin,
	// newest first, and marks unread admin-origin messages read while
	// doing so.
	CompanyThread(ctx context.Context, companyID snowflake.ID) ([]Message, error)
	UnreadCountForAdmin(ctx context.Context) (int64, error)
	UnreadCountForCompany(ctx context.Context, companyID snowflake.ID) (int64, error)
}
