package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/message/domain"
	"gorm.io/gorm"
)

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, message domain.Message) error {
	return r.db.WithContext(ctx).Create(&message).Error
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Message, error) {
	var message domain.Message
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &message, nil
}

func (r *repository) MarkRead(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("id = ?", id).
		Update("is_read", true).Error
}

func (r *repository) AdminInbox(ctx context.Context) ([]domain.InboxItem, error) {
	var items []domain.InboxItem
	err := r.db.WithContext(ctx).Raw(
		`SELECT m.id, m.sender_type, m.sender_id,
		        COALESCE(c.company_name, 'Admin') AS sender_name,
		        m.message_text, m.is_read, m.created_at
		 FROM messages m
		 LEFT JOIN companies c ON m.sender_type = ? AND m.sender_id = c.id
		 WHERE m.receiver_type = ?
		 ORDER BY m.created_at DESC`,
		domain.EndpointCompany, domain.EndpointAdmin,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CompanyThread(ctx context.Context, companyID snowflake.ID) ([]domain.Message, error) {
	var messages []domain.Message
	err := r.db.WithContext(ctx).
		Where("(sender_type = ? AND sender_id = ?) OR (receiver_type = ? AND receiver_id = ?)",
			domain.EndpointCompany, companyID, domain.EndpointCompany, companyID).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

func (r *repository) MarkAdminMessagesRead(ctx context.Context, companyID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("sender_type = ? AND receiver_type = ? AND receiver_id = ? AND is_read = ?",
			domain.EndpointAdmin, domain.EndpointCompany, companyID, false).
		Update("is_read", true).Error
}

func (r *repository) UnreadCountForAdmin(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("receiver_type = ? AND is_read = ?", domain.EndpointAdmin, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) UnreadCountForCompany(ctx context.Context, companyID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Message{}).
		Where("receiver_type = ? AND receiver_id = ? AND is_read = ?", domain.EndpointCompany, companyID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
