package models

import (
	"time"

	"gorm.io/gorm"
)

// Property represents a rental property owned by a landlord
type Property struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	LandlordID uint           `gorm:"not null;index" json:"landlord_id"` // foreign key to users table
	Landlord   User           `gorm:"foreignKey:LandlordID" json:"landlord"`
	Name       string         `gorm:"not null" json:"name"`
	Address    string         `gorm:"not null" json:"address"`
	City       string         `json:"city"`
	State      string         `json:"state"`
	ZipCode    string         `json:"zip_code"`
	Units      []Unit         `gorm:"foreignKey:PropertyID" json:"units,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}
