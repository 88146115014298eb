package models

import (
	"time"

	"gorm.io/gorm"
)

// Unit represents a tenant-addressable space within a property
type Unit struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PropertyID  uint           `gorm:"not null;index" json:"property_id"` // foreign key to properties table
	Property    Property       `gorm:"foreignKey:PropertyID" json:"property"`
	UnitNumber  string         `gorm:"not null" json:"unit_number"`
	Bedrooms    int            `json:"bedrooms"`
	Bathrooms   int            `json:"bathrooms"`
	MonthlyRent float64        `json:"monthly_rent"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Unit model
func (Unit) TableName() string {
	return "units"
}
