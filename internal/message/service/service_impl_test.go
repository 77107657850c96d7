package service

import (
	"context"
	"testing"

	"github.com/bwmarrin/snowflake"
	"github.com/glebarez/sqlite"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	companyrepo "github.com/staffdeck/staffdeck/internal/company/repository"
	"github.com/staffdeck/staffdeck/internal/message/domain"
	messagerepo "github.com/staffdeck/staffdeck/internal/message/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newFixture(t *testing.T) (*gorm.DB, domain.Service, companydomain.Company) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&companydomain.Company{}, &domain.Message{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	company := companydomain.Company{
		ID:           node.Generate(),
		CompanyName:  "Acme Pvt Ltd",
		Slug:         "acme-pvt-ltd",
		Username:     "acme",
		PasswordHash: "x",
		IsActive:     true,
	}
	require.NoError(t, db.Create(&company).Error)

	svc := NewService(db, messagerepo.NewRepository(db), companyrepo.NewRepository(db), node, zap.NewNop())
	return db, svc, company
}

func TestCompanyThreadMarksAdminMessagesRead(t *testing.T) {
	db, svc, company := newFixture(t)
	ctx := context.Background()
	companyEnd := domain.Endpoint{Type: domain.EndpointCompany, ID: company.ID}

	_, err := svc.Send(ctx, domain.AdminEndpoint(), companyEnd, "welcome aboard")
	require.NoError(t, err)
	_, err = svc.Send(ctx, companyEnd, domain.AdminEndpoint(), "thanks")
	require.NoError(t, err)

	unread, err := svc.UnreadCountForCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)

	thread, err := svc.CompanyThread(ctx, company.ID)
	require.NoError(t, err)
	require.Len(t, thread, 2)

	// Opening the thread read the admin message as a side effect.
	unread, err = svc.UnreadCountForCompany(ctx, company.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	// The company's own message to the admin stays unread until the admin
	// marks it explicitly.
	adminUnread, err := svc.UnreadCountForAdmin(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), adminUnread)

	var toAdmin domain.Message
	require.NoError(t, db.Where("receiver_type = ?", domain.EndpointAdmin).First(&toAdmin).Error)
	require.NoError(t, svc.MarkRead(ctx, toAdmin.ID))

	adminUnread, err = svc.UnreadCountForAdmin(ctx)
	require.NoError(t, err)
	assert.Zero(t, adminUnread)
}

func TestAdminInboxResolvesSenderNames(t *testing.T) {
	_, svc, company := newFixture(t)
	ctx := context.Background()
	companyEnd := domain.Endpoint{Type: domain.EndpointCompany, ID: company.ID}

	_, err := svc.Send(ctx, companyEnd, domain.AdminEndpoint(), "renewal question")
	require.NoError(t, err)

	inbox, err := svc.AdminInbox(ctx)
	require.NoError(t, err)
	require.Len(t, inbox, 1)
	assert.Equal(t, "Acme Pvt Ltd", inbox[0].SenderName)
	assert.False(t, inbox[0].IsRead)
}

func TestSendValidation(t *testing.T) {
	_, svc, company := newFixture(t)
	ctx := context.Background()
	companyEnd := domain.Endpoint{Type: domain.EndpointCompany, ID: company.ID}

	_, err := svc.Send(ctx, domain.AdminEndpoint(), companyEnd, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidText)

	_, err = svc.Send(ctx, companyEnd, companyEnd, "hello")
	assert.ErrorIs(t, err, domain.ErrSameSide)

	_, err = svc.Send(ctx, domain.AdminEndpoint(), domain.Endpoint{Type: domain.EndpointCompany, ID: 9999}, "hello")
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	_, err = svc.Send(ctx, domain.Endpoint{Type: domain.EndpointAdmin, ID: 7}, companyEnd, "hello")
	assert.ErrorIs(t, err, domain.ErrInvalidEndpoint)
}
