package service

import (
	"context"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	companydomain "github.com/staffdeck/staffdeck/internal/company/domain"
	"github.com/staffdeck/staffdeck/internal/message/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type service struct {
	db          *gorm.DB
	repo        domain.Repository
	companyRepo companydomain.Repository
	genID       *snowflake.Node
	log         *zap.Logger
}

func NewService(
	conn *gorm.DB,
	repo domain.Repository,
	companyRepo companydomain.Repository,
	genID *snowflake.Node,
	log *zap.Logger,
) domain.Service {
	return &service{
		db:          conn,
		repo:        repo,
		companyRepo: companyRepo,
		genID:       genID,
		log:         log,
	}
}

func (s *service) Send(ctx context.Context, from, to domain.Endpoint, text string) (*domain.Message, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrInvalidText
	}
	if err := validateEndpoint(from); err != nil {
		return nil, err
	}
	if err := validateEndpoint(to); err != nil {
		return nil, err
	}
	if from.Type == to.Type {
		return nil, domain.ErrSameSide
	}

	for _, endpoint := range []domain.Endpoint{from, to} {
		if endpoint.Type != domain.EndpointCompany {
			continue
		}
		company, err := s.companyRepo.GetByID(ctx, endpoint.ID)
		if err != nil {
			return nil, err
		}
		if company == nil {
			return nil, domain.ErrCompanyNotFound
		}
	}

	message := domain.Message{
		ID:           s.genID.Generate(),
		SenderType:   from.Type,
		SenderID:     from.ID,
		ReceiverType: to.Type,
		ReceiverID:   to.ID,
		MessageText:  text,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, message); err != nil {
		return nil, err
	}

	s.log.Info("message sent",
		zap.String("from", string(from.Type)),
		zap.String("to", string(to.Type)),
		zap.String("message_id", message.ID.String()),
	)
	return &message, nil
}

func (s *service) MarkRead(ctx context.Context, id snowflake.ID) error {
	message, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if message == nil {
		return domain.ErrNotFound
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *service) AdminInbox(ctx context.Context) ([]domain.InboxItem, error) {
	return s.repo.AdminInbox(ctx)
}

func (s *service) CompanyThread(ctx context.Context, companyID snowflake.ID) ([]domain.Message, error) {
	var messages []domain.Message
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		var err error
		messages, err = repo.CompanyThread(ctx, companyID)
		if err != nil {
			return err
		}
		// Opening the thread counts as reading the admin's side of it.
		return repo.MarkAdminMessagesRead(ctx, companyID)
	})
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (s *service) UnreadCountForAdmin(ctx context.Context) (int64, error) {
	return s.repo.UnreadCountForAdmin(ctx)
}

func (s *service) UnreadCountForCompany(ctx context.Context, companyID snowflake.ID) (int64, error) {
	return s.repo.UnreadCountForCompany(ctx, companyID)
}

func validateEndpoint(endpoint domain.Endpoint) error {
	switch endpoint.Type {
	case domain.EndpointAdmin:
		if endpoint.ID != 0 {
			return domain.ErrInvalidEndpoint
		}
	case domain.EndpointCompany:
		if endpoint.ID == 0 {
			return domain.ErrInvalidEndpoint
		}
	default:
		return domain.ErrInvalidEndpoint
	}
	return nil
}
