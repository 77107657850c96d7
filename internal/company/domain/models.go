// Package domain contains persistence models for the company service.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Company is a tenant. It owns branches, roles and tasks, and is a messaging
// endpoint toward the admin.
type Company struct {
	ID            snowflake.ID `gorm:"primaryKey" json:"id"`
	CompanyName   string       `gorm:"type:varchar(100);not null;uniqueIndex:ux_companies_name" json:"company_name"`
	Slug          string       `gorm:"type:text;not null" json:"slug"`
	Username      string       `gorm:"type:varchar(50);not null;uniqueIndex:ux_companies_username" json:"username"`
	PasswordHash  string       `gorm:"type:varchar(255);not null" json:"-"`
	ProfilePicURL string       `gorm:"type:text" json:"profile_pic_url"`
	IsActive      bool         `gorm:"not null" json:"is_active"`
	CreatedAt     time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Company) TableName() string { return "companies" }
