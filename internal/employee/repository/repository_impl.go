package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/employee/domain"
	"gorm.io/gorm"
)

const detailSelect = `SELECT e.id, e.username, e.full_name, e.profile_pic_url, e.is_active,
       e.branch_id, b.branch_name, b.company_id, c.company_name,
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

func (r *repository) List(ctx context.Context, filter domain.ListFilter) ([]domain.EmployeeDetail, error) {
	query := detailSelect + ` WHERE 1 = 1`
	args := []any{}
	if filter.CompanyID != 0 {
		query += ` AND b.company_id = ?`
		args = append(args, filter.CompanyID)
	}
	if filter.BranchID != 0 {
		query += ` AND e.branch_id = ?`
		args = append(args, filter.BranchID)
	}
	if filter.RoleLevel != 0 {
		query += ` AND r.role_level = ?`
		args = append(args, filter.RoleLevel)
	}
	if filter.ActiveOnly {
		query += ` AND e.is_active = ?`
		args = append(args, true)
	}
	query += ` ORDER BY r.role_level, e.full_name`

	var details []domain.EmployeeDetail
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.EmployeeDetail, error) {
	var detail domain.EmployeeDetail
	result := r.db.WithContext(ctx).Raw(detailSelect+` WHERE e.id = ?`, id).Scan(&detail)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &detail, nil
}

func (r *repository) FindByID(ctx context.Context, id snowflake.ID) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) FindByUsername(ctx context.Context, username string) (*domain.Employee, error) {
	var employee domain.Employee
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&employee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &employee, nil
}

func (r *repository) Create(ctx context.Context, employee domain.Employee) error {
	return r.db.WithContext(ctx).Create(&employee).Error
}

func (r *repository) UpdateStatus(ctx context.Context, id snowflake.ID, isActive bool) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Update("is_active", isActive).Error
}

func (r *repository) UpdateRole(ctx context.Context, id, roleID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Update("role_id", roleID).Error
}

func (r *repository) UpdateBranch(ctx context.Context, id, branchID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Update("branch_id", branchID).Error
}

func (r *repository) UpdatePassword(ctx context.Context, id snowflake.ID, passwordHash string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}

func (r *repository) UpdateProfile(ctx context.Context, id snowflake.ID, fullName, profilePicURL string) error {
	return r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"full_name":       fullName,
			"profile_pic_url": profilePicURL,
		}).Error
}
