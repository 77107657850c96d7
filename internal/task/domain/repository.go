package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// StatusFilter narrows task listings by completion state.
type StatusFilter string

const (
	StatusAll       StatusFilter = "all"
	StatusPending   StatusFilter = "pending"
	StatusCompleted StatusFilter = "completed"
)

type Repository interface {
	WithTx(tx *gorm.DB) Repository

	Create(ctx context.Context, task Task) error
	CreateAssignments(ctx context.Context, assignments []Assignment) error
	GetByID(ctx context.Context, id snowflake.ID) (*Task, error)
	GetAssignment(ctx context.Context, taskID, employeeID snowflake.ID) (*Assignment, error)

	CompleteAssignment(ctx context.Context, assignmentID snowflake.ID, at time.Time) error
	CompleteTask(ctx context.Context, taskID, completedByID snowflake.ID, at time.Time) error
	PendingAssignments(ctx context.Context, taskID snowflake.ID) (int64, error)

	ResetTask(ctx context.Context, taskID snowflake.ID) error
	ResetAssignments(ctx context.Context, taskID snowflake.ID) error
	DeleteAssignments(ctx context.Context, taskID snowflake.ID) error
	Delete(ctx context.Context, taskID snowflake.ID) error

	// ActiveBranchEmployees returns the ids snapshotted into assignments
	// when a branch task is created.
	ActiveBranchEmployees(ctx context.Context, branchID snowflake.ID) ([]snowflake.ID, error)
	RoleLevelOf(ctx context.Context, employeeID snowflake.ID) (int, error)

	ListForCompany(ctx context.Context, companyID snowflake.ID, status StatusFilter) ([]TaskListItem, error)
	ListForEmployee(ctx context.Context, employeeID snowflake.ID, status StatusFilter) ([]EmployeeTaskItem, error)
	Progress(ctx context.Context, taskID snowflake.ID) (*Progress, error)
}
