// Package domain defines the authenticated identity shared across services.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// Kind tags which table (or the admin secret) an identity came from.
type Kind string

const (
	KindAdmin    Kind = "admin"
	KindCompany  Kind = "company"
	KindEmployee Kind = "employee"
)

// AdminID is the sentinel identity id used by the admin super-user.
const AdminID snowflake.ID = 0

// Identity is the role-tagged record handed to services with every call.
// There is no implicit global session state below the HTTP layer.
type Identity struct {
	Kind          Kind         `json:"kind"`
	ID            snowflake.ID `json:"id"`
	Username      string       `json:"username"`
	FullName      string       `json:"full_name"`
	ProfilePicURL string       `json:"profile_pic_url"`

	// Employee scope; zero for admin and company identities.
	BranchID    snowflake.ID `json:"branch_id,omitempty"`
	BranchName  string       `json:"branch_name,omitempty"`
	CompanyID   snowflake.ID `json:"company_id,omitempty"`
	CompanyName string       `json:"company_name,omitempty"`
	RoleID      snowflake.ID `json:"role_id,omitempty"`
	RoleName    string       `json:"role_name,omitempty"`
	RoleLevel   int          `json:"role_level,omitempty"`
}

func (i Identity) IsAdmin() bool    { return i.Kind == KindAdmin }
func (i Identity) IsCompany() bool  { return i.Kind == KindCompany }
func (i Identity) IsEmployee() bool { return i.Kind == KindEmployee }

// Session is a persisted login session resolved from the cookie token.
type Session struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	TokenHash    string       `gorm:"type:varchar(64);not null;uniqueIndex:ux_sessions_token_hash" json:"-"`
	IdentityKind Kind         `gorm:"type:varchar(20);column:identity_kind;not null" json:"identity_kind"`
	IdentityID   snowflake.ID `gorm:"column:identity_id;not null" json:"identity_id"`
	ExpiresAt    time.Time    `gorm:"not null" json:"expires_at"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Session) TableName() string { return "sessions" }
