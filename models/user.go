package models

import (
	"time"

	"gorm.io/gorm"
)

// Role determines which actions a user may perform on maintenance
// requests and work orders.
type Role string

const (
	RoleTenant   Role = "tenant"
	RoleLandlord Role = "landlord"
	RoleWorkman  Role = "workman"
	RoleAdmin    Role = "admin"
)

// ParseRole validates an incoming role string.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleTenant, RoleLandlord, RoleWorkman, RoleAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// User represents a user in the system (tenant, landlord, workman or admin)
type User struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Auth0ID   string         `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	Name      string         `gorm:"not null" json:"name"`
	Email     string         `gorm:"uniqueIndex;not null" json:"email"`
	Phone     string         `json:"phone"`
	Role      Role           `gorm:"type:varchar(20);not null;default:'tenant'" json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the User model
func (User) TableName() string {
	return "users"
}
