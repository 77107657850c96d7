package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/auth/domain"
	"gorm.io/gorm"
)

const employeeAuthSelect = `SELECT e.id, e.username, e.password_hash, e.full_name, e.profile_pic_url,
       e.is_active, e.branch_id, b.branch_name, b.is_active AS branch_is_active,
       b.company_id, c.company_name, c.is_active AS company_is_active,
       e.role_id, r.role_name, r.role_level
FROM employees e
JOIN branches b ON e.branch_id = b.id
JOIN companies c ON b.company_id = c.id
JOIN employee_roles r ON e.role_id = r.id`

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) FindCompanyByUsername(ctx context.Context, username string) (*domain.CompanyAuth, error) {
	return r.companyAuth(ctx, `SELECT id, company_name, username, password_hash, profile_pic_url, is_active
		FROM companies WHERE username = ?`, username)
}

func (r *repository) FindCompanyByID(ctx context.Context, id snowflake.ID) (*domain.CompanyAuth, error) {
	return r.companyAuth(ctx, `SELECT id, company_name, username, password_hash, profile_pic_url, is_active
		FROM companies WHERE id = ?`, id)
}

func (r *repository) companyAuth(ctx context.Context, query string, arg any) (*domain.CompanyAuth, error) {
	var row domain.CompanyAuth
	result := r.db.WithContext(ctx).Raw(query, arg).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repository) FindEmployeeByUsername(ctx context.Context, username string) (*domain.EmployeeAuth, error) {
	return r.employeeAuth(ctx, employeeAuthSelect+` WHERE e.username = ?`, username)
}

func (r *repository) FindEmployeeByID(ctx context.Context, id snowflake.ID) (*domain.EmployeeAuth, error) {
	return r.employeeAuth(ctx, employeeAuthSelect+` WHERE e.id = ?`, id)
}

func (r *repository) employeeAuth(ctx context.Context, query string, arg any) (*domain.EmployeeAuth, error) {
	var row domain.EmployeeAuth
	result := r.db.WithContext(ctx).Raw(query, arg).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &row, nil
}

func (r *repository) CreateSession(ctx context.Context, session domain.Session) error {
	return r.db.WithContext(ctx).Create(&session).Error
}

func (r *repository) FindSessionByTokenHash(ctx context.Context, tokenHash string) (*domain.Session, error) {
	var session domain.Session
	err := r.db.WithContext(ctx).Where("token_hash = ?", tokenHash).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *repository) DeleteSession(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Session{}).Error
}

func (r *repository) DeleteExpiredSessions(ctx context.Context, now time.Time) error {
	return r.db.WithContext(ctx).Where("expires_at < ?", now).Delete(&domain.Session{}).Error
}
