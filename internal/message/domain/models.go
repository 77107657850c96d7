// Package domain contains models for admin/company messaging.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

// EndpointType tags a message participant.
type EndpointType string

const (
	EndpointAdmin   EndpointType = "admin"
	EndpointCompany EndpointType = "company"
)

// Endpoint identifies one side of a message. The admin side is a singleton
// with a zero id.
type Endpoint struct {
	Type EndpointType `json:"type"`
	ID   snowflake.ID `json:"id"`
}

// AdminEndpoint returns the platform-admin side of a conversation.
func AdminEndpoint() Endpoint {
	return Endpoint{Type: EndpointAdmin, ID: 0}
}

// Message is a single directed note between the admin and a company.
type Message struct {
	ID           snowflake.ID `gorm:"primaryKey" json:"id"`
	SenderType   EndpointType `gorm:"type:varchar(20);not null" json:"sender_type"`
	SenderID     snowflake.ID `gorm:"not null" json:"sender_id"`
	ReceiverType EndpointType `gorm:"type:varchar(20);not null" json:"receiver_type"`
	ReceiverID   snowflake.ID `gorm:"not null" json:"receiver_id"`
	MessageText  string       `gorm:"type:text;not null" json:"message_text"`
	IsRead       bool         `gorm:"not null;default:false" json:"is_read"`
	CreatedAt    time.Time    `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName sets the database table name.
func (Message) TableName() string { return "messages" }

// InboxItem is a message row with the company-side name resolved.
type InboxItem struct {
	ID          snowflake.ID `json:"id"`
	SenderType  EndpointType `json:"sender_type"`
	SenderID    snowflake.ID `json:"sender_id"`
	SenderName  string       `json:"sender_name"`
	MessageText string       `json:"message_text"`
	IsRead      bool         `json:"is_read"`
	CreatedAt   time.Time    `json:"created_at"`
}
