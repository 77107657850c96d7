package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/company/domain"
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

func (r *repository) List(ctx context.Context, activeOnly bool) ([]domain.Company, error) {
	q := r.db.WithContext(ctx).Order("company_name ASC")
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}

	var companies []domain.Company
	if err := q.Find(&companies).Error; err != nil {
		return nil, err
	}
	return companies, nil
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) FindByName(ctx context.Context, companyName string) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).Where("company_name = ?", companyName).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*domain.Company, error) {
	var company domain.Company
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &company, nil
}

func (r *repository) Create(ctx context.Context, company domain.Company) error {
	return r.db.WithContext(ctx).Create(&company).Error
}

func (r *repository) UpdateProfile(ctx context.Context, id snowflake.ID, companyName, profilePicURL string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"company_name":    companyName,
			"profile_pic_url": profilePicURL,
		}).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id snowflake.ID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Company{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *repository) SetStatusCascade(ctx context.Context, id snowflake.ID, isActive bool) error {
	if err := r.db.WithContext(ctx).Exec(
		`UPDATE companies SET is_active = ? WHERE id = ?`, isActive, id,
	).Error; err != nil {
		return err
	}

	if err := r.db.WithContext(ctx).Exec(
		`UPDATE branches SET is_active = ? WHERE company_id = ?`, isActive, id,
	).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(
		`UPDATE employees SET is_active = ?
		 WHERE branch_id IN (SELECT id FROM branches WHERE company_id = ?)`,
		isActive, id,
	).Error
}
