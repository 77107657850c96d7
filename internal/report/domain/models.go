// Package domain contains persistence models for the daily report service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// DailyReport holds at most one logical entry per employee per day; the
// service enforces the upsert, there is no unique constraint underneath.
type DailyReport struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	EmployeeID snowflake.ID `gorm:"not null;index:ix_daily_reports_employee_date" json:"employee_id"`
	ReportDate time.Time    `gorm:"type:date;not null;index:ix_daily_reports_employee_date" json:"report_date"`
	ReportText string       `gorm:"type:text;not null" json:"report_text"`
	CreatedAt  time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (DailyReport) TableName() string { return "daily_reports" }

// ReportListItem is a report row joined with employee, role and branch
// context for management listings.
type ReportListItem struct {
	ID         snowflake.ID `json:"id"`
	EmployeeID snowflake.ID `json:"employee_id"`
	FullName   string       `json:"full_name"`
	RoleName   string       `json:"role_name"`
	RoleLevel  int          `json:"role_level"`
	BranchID   snowflake.ID `json:"branch_id"`
	BranchName string       `json:"branch_name"`
	ReportDate time.Time    `json:"report_date"`
	ReportText string       `json:"report_text"`
	CreatedAt  time.Time    `json:"created_at"`
}
