package models

import (
	"time"

	"gorm.io/gorm"
)

// Lease binds a tenant to a unit for a period of time
type Lease struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UnitID        uint           `gorm:"not null;index" json:"unit_id"` // foreign key to units table
	Unit          Unit           `gorm:"foreignKey:UnitID" json:"unit"`
	TenantID      uint           `gorm:"not null;index" json:"tenant_id"` // foreign key to users table
	Tenant        User           `gorm:"foreignKey:TenantID" json:"tenant"`
	StartDate     time.Time      `gorm:"not null" json:"start_date"`
	EndDate       time.Time      `gorm:"not null" json:"end_date"`
	MonthlyRent   float64        `gorm:"not null" json:"monthly_rent"`
	DepositAmount float64        `json:"deposit_amount"`
	Active        bool           `gorm:"not null;default:true" json:"active"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Lease model
func (Lease) TableName() string {
	return "leases"
}
