package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment represents a rent payment made against a lease
type Payment struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	LeaseID     uint           `gorm:"not null;index" json:"lease_id"` // foreign key to leases table
	Lease       Lease          `gorm:"foreignKey:LeaseID" json:"lease"`
	TenantID    uint           `gorm:"not null;index" json:"tenant_id"` // foreign key to users table
	Tenant      User           `gorm:"foreignKey:TenantID" json:"tenant"`
	Amount      float64        `gorm:"not null;check:amount > 0" json:"amount"`
	PaymentDate time.Time      `json:"payment_date"`
	Method      string         `gorm:"not null;default:'card'" json:"method"` // card, bank_transfer, check, cash
	Status      string         `gorm:"not null;default:'completed'" json:"status"`
	Notes       string         `json:"notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
