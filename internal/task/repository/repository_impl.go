package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/staffdeck/staffdeck/internal/task/domain"
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

func (r *repository) Create(ctx context.Context, task domain.Task) error {
	return r.db.WithContext(ctx).Create(&task).Error
}

func (r *repository) CreateAssignments(ctx context.Context, assignments []domain.Assignment) error {
	if len(assignments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&assignments).Error
}

func (r *repository) GetByID(ctx context.Context, id snowflake.ID) (*domain.Task, error) {
	var task domain.Task
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (r *repository) GetAssignment(ctx context.Context, taskID, employeeID snowflake.ID) (*domain.Assignment, error) {
	var assignment domain.Assignment
	err := r.db.WithContext(ctx).
		Where("task_id = ? AND employee_id = ?", taskID, employeeID).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &assignment, nil
}

func (r *repository) CompleteAssignment(ctx context.Context, assignmentID snowflake.ID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("id = ?", assignmentID).
		Updates(map[string]any{
			"is_completed": true,
			"completed_at": at,
		}).Error
}

func (r *repository) CompleteTask(ctx context.Context, taskID, completedByID snowflake.ID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"is_completed":    true,
			"completed_by_id": completedByID,
			"completed_at":    at,
		}).Error
}

func (r *repository) PendingAssignments(ctx context.Context, taskID snowflake.ID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("task_id = ? AND is_completed = ?", taskID, false).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *repository) ResetTask(ctx context.Context, taskID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Task{}).
		Where("id = ?", taskID).
		Updates(map[string]any{
			"is_completed":    false,
			"completed_by_id": nil,
			"completed_at":    nil,
		}).Error
}

func (r *repository) ResetAssignments(ctx context.Context, taskID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Model(&domain.Assignment{}).
		Where("task_id = ?", taskID).
		Updates(map[string]any{
			"is_completed": false,
			"completed_at": nil,
		}).Error
}

func (r *repository) DeleteAssignments(ctx context.Context, taskID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("task_id = ?", taskID).
		Delete(&domain.Assignment{}).Error
}

func (r *repository) Delete(ctx context.Context, taskID snowflake.ID) error {
	return r.db.WithContext(ctx).
		Where("id = ?", taskID).
		Delete(&domain.Task{}).Error
}

func (r *repository) ActiveBranchEmployees(ctx context.Context, branchID snowflake.ID) ([]snowflake.ID, error) {
	var ids []snowflake.ID
	err := r.db.WithContext(ctx).Raw(
		`SELECT id FROM employees WHERE branch_id = ? AND is_active = ? ORDER BY id`,
		branchID, true,
	).Scan(&ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) RoleLevelOf(ctx context.Context, employeeID snowflake.ID) (int, error) {
	var level int
	result := r.db.WithContext(ctx).Raw(
		`SELECT r.role_level
		 FROM employees e
		 JOIN employee_roles r ON e.role_id = r.id
		 WHERE e.id = ?`,
		employeeID,
	).Scan(&level)
	if result.Error != nil {
		return 0, result.Error
	}
	if result.RowsAffected == 0 {
		return 0, gorm.ErrRecordNotFound
	}
	return level, nil
}

func (r *repository) ListForCompany(ctx context.Context, companyID snowflake.ID, status domain.StatusFilter) ([]domain.TaskListItem, error) {
	query := `SELECT t.id, t.task_description, t.due_date, t.is_completed,
	       t.completed_at, t.created_at,
	       CASE WHEN t.branch_id IS NOT NULL THEN 'branch' ELSE 'employee' END AS assignee_type,
	       CASE WHEN t.branch_id IS NOT NULL THEN b.branch_name ELSE e.full_name END AS assignee_name,
	       COALESCE(ce.full_name, '') AS completed_by_name
	FROM tasks t
	LEFT JOIN branches b ON t.branch_id = b.id
	LEFT JOIN employees e ON t.employee_id = e.id
	LEFT JOIN employees ce ON t.completed_by_id = ce.id
	WHERE t.company_id = ?`
	args := []any{companyID}

	switch status {
	case domain.StatusPending:
		query += ` AND t.is_completed = ?`
		args = append(args, false)
	case domain.StatusCompleted:
		query += ` AND t.is_completed = ?`
		args = append(args, true)
	}
	// Due dates first, undated tasks last, newest created first within a date.
	query += ` ORDER BY (t.due_date IS NULL), t.due_date ASC, t.created_at DESC`

	var items []domain.TaskListItem
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) ListForEmployee(ctx context.Context, employeeID snowflake.ID, status domain.StatusFilter) ([]domain.EmployeeTaskItem, error) {
	// Direct tasks carry their own completion flag; branch tasks carry the
	// employee's assignment flag.
	query := `SELECT id, task_description, due_date, assignment_type, is_completed, completed_at, created_at
	FROM (
		SELECT t.id, t.task_description, t.due_date, 'employee' AS assignment_type,
		       t.is_completed, t.completed_at, t.created_at
		FROM tasks t
		WHERE t.employee_id = ?
		UNION ALL
		SELECT t.id, t.task_description, t.due_date, 'branch' AS assignment_type,
		       a.is_completed, a.completed_at, t.created_at
		FROM tasks t
		JOIN task_assignments a ON a.task_id = t.id
		WHERE a.employee_id = ?
	) u`
	args := []any{employeeID, employeeID}

	switch status {
	case domain.StatusPending:
		query += ` WHERE u.is_completed = ?`
		args = append(args, false)
	case domain.StatusCompleted:
		query += ` WHERE u.is_completed = ?`
		args = append(args, true)
	}
	query += ` ORDER BY (u.due_date IS NULL), u.due_date ASC, u.created_at DESC`

	var items []domain.EmployeeTaskItem
	err := r.db.WithContext(ctx).Raw(query, args...).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Progress(ctx context.Context, taskID snowflake.ID) (*domain.Progress, error) {
	var rows []domain.AssignmentProgress
	err := r.db.WithContext(ctx).Raw(
		`SELECT a.employee_id, e.full_name, r.role_name, r.role_level,
		        a.is_completed, a.completed_at
		 FROM task_assignments a
		 JOIN employees e ON a.employee_id = e.id
		 JOIN employee_roles r ON e.role_id = r.id
		 WHERE a.task_id = ?
		 ORDER BY r.role_level, e.full_name`,
		taskID,
	).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	progress := domain.Progress{Total: len(rows), Assignments: rows}
	for _, row := range rows {
		if row.IsCompleted {
			progress.Completed++
		}
	}
	return &progress, nil
}
