package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/role/domain"
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

func (r *repository) ListByCompany(ctx context.Context, companyID snowflake.ID) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).
		Where("company_id = ?", companyID).
		Order("role_level ASC, role_name ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) FindByName(ctx context.Context, companyID snowflake.ID, roleName string) (*domain.Role, error) {
	var role domain.Role
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND role_name = ?", companyID, roleName).
		First(&role).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) ManagerRoles(ctx context.Context, companyID snowflake.ID) ([]domain.Role, error) {
	var roles []domain.Role
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND role_level <= ?", companyID, 2).
		Order("role_level ASC").
		Find(&roles).Error
	if err != nil {
		return nil, err
	}
	return roles, nil
}

func (r *repository) CountByCompany(ctx context.Context, companyID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Role{}).
		Where("company_id = ?", companyID).
		Count(&count).Error
	return count, err
}

func (r *repository) Create(ctx context.Context, role domain.Role) error {
	return r.db.WithContext(ctx).Create(&role).Error
}

func (r *repository) Update(ctx context.Context, role domain.Role) error {
	return r.db.WithContext(ctx).
		Model(&domain.Role{}).
		Where("id = ?", role.ID).
		Updates(map[string]any{
			"role_name":  role.RoleName,
			"role_level": role.RoleLevel,
		}).Error
}

func (r *repository) Delete(ctx context.Context, id snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&domain.Role{}).Error
}

func (r *repository) ReassignEmployees(ctx context.Context, fromRoleID, toRoleID snowflake.ID) error {
	return r.db.WithContext(ctx).Exec(
		`UPDATE employees SET role_id = ? WHERE role_id = ?`,
		toRoleID, fromRoleID,
	).Error
}
