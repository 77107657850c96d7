package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/report/domain"
	"gorm.io/gorm"
)

const listSelect = `SELECT d.id, d.employee_id, e.full_name, r.role_name, r.role_level,
       e.branch_id, b.branch_name, d.report_date, d.report_text, d.created_at
FROM daily_reports d
JOIN employees e ON d.employee_id = e.id
JOIN employee_roles r ON e.role_id = r.id
JOIN branches b ON e.branch_id = b.id`

// Org grouping keeps each day's reports readable top-down.
const listOrder = ` ORDER BY d.report_date DESC, b.branch_name, r.role_level, e.full_name`

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) domain.Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) domain.Repository {
	return &repository{db: tx}
}

func (r *repository) FindByEmployeeAndDate(ctx context.Context, employeeID snowflake.ID, date time.Time) (*domain.DailyReport, error) {
	var report domain.DailyReport
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND report_date = ?", employeeID, date).
		First(&report).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *repository) Create(ctx context.Context, report domain.DailyReport) error {
	return r.db.WithContext(ctx).Create(&report).Error
}

func (r *repository) UpdateText(ctx context.Context, id snowflake.ID, text string) error {
	return r.db.WithContext(ctx).
		Model(&domain.DailyReport{}).
		Where("id = ?", id).
		Update("report_text", text).Error
}

func (r *repository) ListForEmployee(ctx context.Context, employeeID snowflake.ID, dateRange domain.DateRange) ([]domain.DailyReport, error) {
	var reports []domain.DailyReport
	err := r.db.WithContext(ctx).
		Where("employee_id = ? AND report_date BETWEEN ? AND ?", employeeID, dateRange.From, dateRange.To).
		Order("report_date DESC").
		Find(&reports).Error
	if err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *repository) ListForBranch(ctx context.Context, branchID snowflake.ID, dateRange domain.DateRange, roleLevel int) ([]domain.ReportListItem, error) {
	query := listSelect + ` WHERE e.branch_id = ? AND d.report_date BETWEEN ? AND ?`
	args := []any{branchID, dateRange.From, dateRange.To}
	if roleLevel != 0 {
		query += ` AND r.role_level = ?`
		args = append(args, roleLevel)
	}
	query += listOrder

	var items []domain.ReportListItem
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListForCompany(ctx context.Context, filter domain.ListFilter) ([]domain.ReportListItem, error) {
	query := listSelect + ` WHERE b.company_id = ? AND d.report_date BETWEEN ? AND ?`
	args := []any{filter.CompanyID, filter.Range.From, filter.Range.To}
	if filter.BranchID != 0 {
		query += ` AND e.branch_id = ?`
		args = append(args, filter.BranchID)
	}
	if filter.RoleLevel != 0 {
		query += ` AND r.role_level = ?`
		args = append(args, filter.RoleLevel)
	}
	query += listOrder

	var items []domain.ReportListItem
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListAll(ctx context.Context, dateRange domain.DateRange, employeeName string) ([]domain.ReportListItem, error) {
	query := listSelect + ` WHERE d.report_date BETWEEN ? AND ?`
	args := []any{dateRange.From, dateRange.To}
	if employeeName != "" {
		query += ` AND LOWER(e.full_name) LIKE LOWER(?)`
		args = append(args, "%"+employeeName+"%")
	}
	query += listOrder

	var items []domain.ReportListItem
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
