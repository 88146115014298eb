package models

import (
	"time"

	"gorm.io/gorm"
)

// WorkOrder represents the execution contract tied 1:1 to an approved
// maintenance request
type WorkOrder struct {
	ID                   uint               `gorm:"primaryKey" json:"id"`
	MaintenanceRequestID uint               `gorm:"not null;uniqueIndex" json:"maintenance_request_id"` // foreign key to maintenance_requests table
	MaintenanceRequest   MaintenanceRequest `gorm:"foreignKey:MaintenanceRequestID" json:"-"`
	WorkOrderNumber      string             `gorm:"uniqueIndex;not null" json:"work_order_number"`
	WorkmanID            uint               `gorm:"not null;index" json:"workman_id"` // foreign key to users table
	Workman              User               `gorm:"foreignKey:WorkmanID" json:"workman"`
	WorkDescription      string             `gorm:"type:text;not null" json:"work_description"`
	EstimatedHours       float64            `json:"estimated_hours"`
	ActualHours          *float64           `json:"actual_hours"` // nullable until logged by the workman
	Status               WorkOrderStatus    `gorm:"type:varchar(20);not null;default:'assigned';index" json:"status"`
	Materials            string             `json:"materials"`
	Instructions         string             `gorm:"type:text" json:"instructions"`
	Notes                string             `gorm:"type:text" json:"notes"`
	AssignedDate         time.Time          `json:"assigned_date"`
	StartedDate          *time.Time         `json:"started_date"`   // nullable, stamped on first in_progress
	CompletedDate        *time.Time         `json:"completed_date"` // nullable, stamped on completion
	CreatedAt            time.Time          `json:"created_at"`
	UpdatedAt            time.Time          `json:"updated_at"`
	DeletedAt            gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TableName specifies the table name for the WorkOrder model
func (WorkOrder) TableName() string {
	return "work_orders"
}
