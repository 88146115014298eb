package models

import (
	"time"

	"gorm.io/gorm"
)

// MaintenanceRequest represents a tenant-reported issue on a unit
type MaintenanceRequest struct {
	ID             uint            `gorm:"primaryKey" json:"id"`
	UnitID         uint            `gorm:"not null;index" json:"unit_id"` // foreign key to units table
	Unit           Unit            `gorm:"foreignKey:UnitID" json:"unit"`
	TenantID       uint            `gorm:"not null;index" json:"tenant_id"` // foreign key to users table
	Tenant         User            `gorm:"foreignKey:TenantID" json:"tenant"`
	WorkmanID      *uint           `gorm:"index" json:"workman_id"` // nullable, set when a work order is created
	Workman        *User           `gorm:"foreignKey:WorkmanID" json:"workman,omitempty"`
	Title          string          `gorm:"not null" json:"title"`
	Description    string          `gorm:"type:text;not null" json:"description"`
	Priority       RequestPriority `gorm:"type:varchar(20);not null;default:'medium'" json:"priority"`
	Status         RequestStatus   `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Category       string          `json:"category"`
	EstimatedCost  *float64        `json:"estimated_cost"` // nullable
	TenantRating   *int            `json:"tenant_rating"`  // nullable, 1-5, set once after completion
	TenantFeedback *string         `json:"tenant_feedback"`
	PhotoS3Key     *string         `json:"photo_s3_key"`                 // nullable, S3 key for an attached photo
	PhotoURL       *string         `gorm:"-" json:"photo_url,omitempty"` // computed field, presigned URL for the photo
	ResolvedAt     *time.Time      `json:"resolved_at"` // nullable, stamped when the request completes
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

// TableName specifies the table name for the MaintenanceRequest model
func (MaintenanceRequest) TableName() string {
	return "maintenance_requests"
}
