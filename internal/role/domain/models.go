// Package domain contains persistence models for the role service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Role is a company-scoped employee role with an ordinal seniority level
// (1 = Manager, 2 = Asst. Manager, 3 = General Employee).
type Role struct {
	ID        snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_employee_roles_company_name,priority:1" json:"company_id"`
	RoleName  string       `gorm:"type:varchar(50);not null;uniqueIndex:ux_employee_roles_company_name,priority:2" json:"role_name"`
	RoleLevel int          `gorm:"not null" json:"role_level"`
	CreatedAt time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Role) TableName() string { return "employee_roles" }
