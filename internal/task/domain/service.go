package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	authdomain "github.com/staffdeck/staffdeck/internal/auth/domain"
)

var (
	ErrNotFound           = errors.New("task not found")
	ErrInvalidDescription = errors.New("task description is required")
	ErrNoTarget           = errors.New("task needs a branch or an employee target")
	ErrBothTargets        = errors.New("task cannot target both a branch and an employee")
	ErrTargetNotFound     = errors.New("task target not found")
	ErrNoActiveEmployees  = errors.New("branch has no active employees to assign")
	ErrPermissionDenied   = errors.New("actor is not permitted to assign this task")
	ErrNotBranchTask      = errors.New("task is not branch-assigned")
)

// CreateTaskRequest targets exactly one of BranchID / EmployeeID.
type CreateTaskRequest struct {
	Actor       authdomain.Identity
	CompanyID   snowflake.ID
	BranchID    snowflake.ID
	EmployeeID  snowflake.ID
	Description string
	DueDate     *time.Time
}

// CompleteOutcome reports what a completion attempt did.
type CompleteOutcome string

const (
	// OutcomeTaskCompleted: the whole task is now complete.
	OutcomeTaskCompleted CompleteOutcome = "task_completed"
	// OutcomeRecorded: the employee's assignment was stamped but other
	// assignments are still pending.
	OutcomeRecorded CompleteOutcome = "recorded"
	// OutcomeAlreadyCompleted: the task (or the employee's part) was
	// already done; the call is a no-op.
	OutcomeAlreadyCompleted CompleteOutcome = "already_completed"
	// OutcomeNotAssignee: the employee is not an assignee of the task;
	// nothing changed.
	OutcomeNotAssignee CompleteOutcome = "not_assignee"
)

type Service interface {
	Create(ctx context.Context, req CreateTaskRequest) (*Task, error)
	Complete(ctx context.Context, taskID, employeeID snowflake.ID) (CompleteOutcome, error)
	Reopen(ctx context.Context, taskID snowflake.ID) error
	Delete(ctx context.Context, taskID snowflake.ID) error
	GetByID(ctx context.Context, id snowflake.ID) (*Task, error)
	ListForCompany(ctx context.Context, companyID snowflake.ID, status StatusFilter) ([]TaskListItem, error)
	ListForEmployee(ctx context.Context, employeeID snowflake.ID, status StatusFilter) ([]EmployeeTaskItem, error)
	BranchProgress(ctx context.Context, taskID snowflake.ID) (*Progress, error)
}
