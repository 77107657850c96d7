// Package domain contains persistence models for the employee service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Employee belongs to exactly one branch and holds exactly one role.
type Employee struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	BranchID      snowflake.ID `gorm:"not null;index" json:"branch_id"`
	RoleID        snowflake.ID `gorm:"not null;index" json:"role_id"`
	Username      string       `gorm:"type:varchar(50);not null;uniqueIndex:ux_employees_username" json:"username"`
	PasswordHash  string       `gorm:"type:varchar(255);not null" json:"-"`
	FullName      string       `gorm:"type:varchar(100);not null" json:"full_name"`
	ProfilePicURL string       `gorm:"type:text" json:"profile_pic_url"`
	IsActive      bool         `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Employee) TableName() string { return "employees" }

// EmployeeDetail is an employee row joined with branch, company and role context.
type EmployeeDetail struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	FullName      string       `json:"full_name"`
	ProfilePicURL string       `json:"profile_pic_url"`
	IsActive      bool         `json:"is_active"`
	BranchID      snowflake.ID `json:"branch_id"`
	BranchName    string       `json:"branch_name"`
	CompanyID     snowflake.ID `json:"company_id"`
	CompanyName   string       `json:"company_name"`
	RoleID        snowflake.ID `json:"role_id"`
	RoleName      string       `json:"role_name"`
	RoleLevel     int          `json:"role_level"`
}
