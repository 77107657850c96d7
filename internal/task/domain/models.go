// Package domain contains persistence models for the task service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Task targets either a whole branch or a single employee, never both.
type Task struct {
	ID              snowflake.ID  `gorm:"primaryKey" json:"id"`
	CompanyID       snowflake.ID  `gorm:"not null;index" json:"company_id"`
	BranchID        *snowflake.ID `gorm:"index" json:"branch_id,omitempty"`
	EmployeeID      *snowflake.ID `gorm:"index" json:"employee_id,omitempty"`
	TaskDescription string        `gorm:"type:text;not null" json:"task_description"`
	DueDate         *time.Time    `gorm:"type:date" json:"due_date,omitempty"`
	IsCompleted     bool          `gorm:"not null;default:false" json:"is_completed"`
	CompletedByID   *snowflake.ID `json:"completed_by_id,omitempty"`
	CompletedAt     *time.Time    `json:"completed_at,omitempty"`
	CreatedAt       time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Task) TableName() string { return "tasks" }

// Assignment is the per-employee completion record snapshotted for a
// branch-assigned task at creation time.
type Assignment struct {
	ID          snowflake.ID `gorm:"primaryKey" json:"id"`
	TaskID      snowflake.ID `gorm:"not null;uniqueIndex:ux_task_assignments_task_employee" json:"task_id"`
	EmployeeID  snowflake.ID `gorm:"not null;uniqueIndex:ux_task_assignments_task_employee" json:"employee_id"`
	IsCompleted bool         `gorm:"not null;default:false" json:"is_completed"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
	CreatedAt   time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Assignment) TableName() string { return "task_assignments" }

// AssigneeType labels the target of a task row in listings.
type AssigneeType string

const (
	AssigneeBranch   AssigneeType = "branch"
	AssigneeEmployee AssigneeType = "employee"
)

// TaskListItem is a task row joined with assignee and completer names for
// company-side listings.
type TaskListItem struct {
	ID              snowflake.ID `json:"id"`
	TaskDescription string       `json:"task_description"`
	DueDate         *time.Time   `json:"due_date,omitempty"`
	IsCompleted     bool         `json:"is_completed"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
	AssigneeType    AssigneeType `json:"assignee_type"`
	AssigneeName    string       `json:"assignee_name"`
	CompletedByName string       `json:"completed_by_name,omitempty"`
}

// EmployeeTaskItem is a task row from an employee's point of view: for a
// branch task the completion fields come from that employee's assignment.
type EmployeeTaskItem struct {
	ID              snowflake.ID `json:"id"`
	TaskDescription string       `json:"task_description"`
	DueDate         *time.Time   `json:"due_date,omitempty"`
	AssignmentType  AssigneeType `json:"assignment_type"`
	IsCompleted     bool         `json:"is_completed"`
	CompletedAt     *time.Time   `json:"completed_at,omitempty"`
	CreatedAt       time.Time    `json:"created_at"`
}

// AssignmentProgress is one employee's row in a branch task progress view.
type AssignmentProgress struct {
	EmployeeID  snowflake.ID `json:"employee_id"`
	FullName    string       `json:"full_name"`
	RoleName    string       `json:"role_name"`
	RoleLevel   int          `json:"role_level"`
	IsCompleted bool         `json:"is_completed"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// Progress summarises a branch task's assignment state.
type Progress struct {
	Total       int                  `json:"total"`
	Completed   int                  `json:"completed"`
	Assignments []AssignmentProgress `json:"assignments"`
}
