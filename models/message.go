package models

import (
	"time"

	"gorm.io/gorm"
)

// Message represents a message in a maintenance request conversation
type Message struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	MaintenanceRequestID uint               `gorm:"not null;index" json:"maintenance_request_id"` // foreign key to maintenance_requests table
	MaintenanceRequest   MaintenanceRequest `gorm:"foreignKey:MaintenanceRequestID" json:"-"`     // don't include full request in JSON
	SenderID             uint               `gorm:"not null;index" json:"sender_id"`              // foreign key to users table
	Sender               User               `gorm:"foreignKey:SenderID" json:"sender"`
	Text                 string             `gorm:"type:text;not null" json:"text"`
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	DeletedAt            gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Message model
func (Message) TableName() string {
	return "messages"
}
