// Package domain contains persistence models for the branch service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Branch belongs to one company. Branches form a tree: a main branch has no
// parent, every other branch hangs under a parent branch of the same company.
type Branch struct {
	ID             snowflake.ID  `gorm:"primaryKey" json:"id"`
	CompanyID      snowflake.ID  `gorm:"not null;index;uniqueIndex:ux_branches_company_name,priority:1" json:"company_id"`
	ParentBranchID *snowflake.ID `gorm:"index" json:"parent_branch_id,omitempty"`
	BranchName     string        `gorm:"type:varchar(100);not null;uniqueIndex:ux_branches_company_name,priority:2" json:"branch_name"`
	IsMainBranch   bool          `gorm:"not null;default:false" json:"is_main_branch"`
	Location       string        `gorm:"type:varchar(255)" json:"location"`
	BranchHead     string        `gorm:"type:varchar(100)" json:"branch_head"`
	IsActive       bool          `gorm:"not null" json:"is_active"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Branch) TableName() string { return "branches" }

// BranchListItem is a branch row joined with its parent and company names.
type BranchListItem struct {
	ID               snowflake.ID  `json:"id"`
	BranchName       string        `json:"branch_name"`
	Location         string        `json:"location"`
	BranchHead       string        `json:"branch_head"`
	IsActive         bool          `json:"is_active"`
	IsMainBranch     bool          `json:"is_main_branch"`
	CompanyID        snowflake.ID  `json:"company_id"`
	CompanyName      string        `json:"company_name"`
	ParentBranchID   *snowflake.ID `json:"parent_branch_id,omitempty"`
	ParentBranchName string        `json:"parent_branch_name,omitempty"`
}

// BranchEmployee is an employee row scoped to one branch, with role context.
type BranchEmployee struct {
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	FullName      string       `json:"full_name"`
	ProfilePicURL string       `json:"profile_pic_url"`
	IsActive      bool         `json:"is_active"`
	RoleName      string       `json:"role_name"`
	RoleLevel     int          `json:"role_level"`
}

// BranchEmployeeCount is the active headcount of one branch.
type BranchEmployeeCount struct {
	BranchID      snowflake.ID `json:"branch_id"`
	BranchName    string       `json:"branch_name"`
	EmployeeCount int          `json:"employee_count"`
}
