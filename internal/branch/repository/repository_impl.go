package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/branch/domain"
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

func (r *repository) ListAll(ctx context.Context) ([]domain.BranchListItem, error) {
	var items []domain.BranchListItem
	err := r.db.WithContext(ctx).Raw(
		`SELECT b.id, b.branch_name, b.location, b.branch_head, b.is_active,
		        b.is_main_branch, b.company_id, c.company_name,
		        b.parent_branch_id, p.branch_name AS parent_branch_name
		 FROM branches b
		 JOIN companies c ON b.company_id = c.id
		 LEFT JOIN branches p ON b.parent_branch_id = p.id
		 ORDER BY c.company_name, b.is_main_branch DESC, b.branch_name`,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListByCompany(ctx context.Context, companyID snowflake.ID) ([]domain.BranchListItem, error) {
	var items []domain.BranchListItem
	err := r.db.WithContext(ctx).Raw(
		`SELECT b.id, b.branch_name, b.location, b.branch_head, b.is_active,
		        b.is_main_branch, b.company_id, c.company_name,
		        b.parent_branch_id, p.branch_name AS parent_branch_name
		 FROM branches b
		 JOIN companies c ON b.company_id = c.id
		 LEFT JOIN branches p ON b.parent_branch_id = p.id
		 WHERE b.company_id = ?
		 ORDER BY b.is_main_branch DESC, b.branch_name`,
		companyID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListActive(ctx context.Context, companyID snowflake.ID) ([]domain.Branch, error) {
	var branches []domain.Branch
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true).
		Order("is_main_branch DESC, branch_name ASC").
		Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Branch, error) {
	var branch domain.Branch
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&branch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *repository) FindByName(ctx context.Context, companyID snowflake.ID, branchName string) (*domain.Branch, error) {
	var branch domain.Branch
	err := r.db.WithContext(ctx).
		Where("company_id = ? AND branch_name = ?", companyID, branchName).
		First(&branch).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *repository) ParentCandidates(ctx context.Context, companyID, excludeID snowflake.ID) ([]domain.Branch, error) {
	q := r.db.WithContext(ctx).
		Where("company_id = ? AND is_active = ?", companyID, true)
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var branches []domain.Branch
	err := q.Order("is_main_branch DESC, branch_name ASC").Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *repository) SubBranches(ctx context.Context, parentBranchID snowflake.ID) ([]domain.Branch, error) {
	var branches []domain.Branch
	err := r.db.WithContext(ctx).
		Where("parent_branch_id = ?", parentBranchID).
		Order("branch_name ASC").
		Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *repository) Employees(ctx context.Context, branchID snowflake.ID) ([]domain.BranchEmployee, error) {
	var employees []domain.BranchEmployee
	err := r.db.WithContext(ctx).Raw(
		`SELECT e.id, e.username, e.full_name, e.profile_pic_url, e.is_active,
		        r.role_name, r.role_level
		 FROM employees e
		 JOIN employee_roles r ON e.role_id = r.id
		 WHERE e.branch_id = ?
		 ORDER BY r.role_level, e.full_name`,
		branchID,
	).Scan(&employees).Error
	if err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *repository) EmployeeCounts(ctx context.Context, companyID snowflake.ID) ([]domain.BranchEmployeeCount, error) {
	var counts []domain.BranchEmployeeCount
	err := r.db.WithContext(ctx).Raw(
		`SELECT b.id AS branch_id, b.branch_name, COUNT(e.id) AS employee_count
		 FROM branches b
		 LEFT JOIN employees e ON b.id = e.branch_id AND e.is_active = ?
		 WHERE b.company_id = ?
		 GROUP BY b.id, b.branch_name, b.is_main_branch
		 ORDER BY b.is_main_branch DESC, b.branch_name`,
		true, companyID,
	).Scan(&counts).Error
	if err != nil {
		return nil, err
	}
	return counts, nil
}

func (r *repository) Create(ctx context.Context, branch domain.Branch) error {
	return r.db.WithContext(ctx).Create(&branch).Error
}

func (r *repository) Update(ctx context.Context, branch domain.Branch) error {
	updates := map[string]any{
		"branch_name": branch.BranchName,
		"location":    branch.Location,
		"branch_head": branch.BranchHead,
	}
	if !branch.IsMainBranch {
		updates["parent_branch_id"] = branch.ParentBranchID
	}
	return r.db.WithContext(ctx).
		Model(&domain.Branch{}).
		Where("id = ?", branch.ID).
		Updates(updates).Error
}

func (r *repository) SetStatusCascade(ctx context.Context, id snowflake.ID, isActive bool) error {
	if err := r.db.WithContext(ctx).Exec(
		`UPDATE branches SET is_active = ? WHERE id = ?`, isActive, id,
	).Error; err != nil {
		return err
	}

	return r.db.WithContext(ctx).Exec(
		`UPDATE employees SET is_active = ? WHERE branch_id = ?`, isActive, id,
	).Error
}
