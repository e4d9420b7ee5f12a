// internal/models/tenant.go
package models

import (
	"time"
)

// Tenant is the billing/organizational boundary owning licenses and users.
// The primary key is a caller-chosen string, not an auto-numeric id.
type Tenant struct {
	ID           string       `json:"id" gorm:"type:varchar(255);primaryKey"`
	Name         string       `json:"name" gorm:"type:varchar(255);not null"`
	Description  string       `json:"description,omitempty" gorm:"type:text"`
	Domain       *string      `json:"domain" gorm:"type:varchar(255)"`
	Status       TenantStatus `json:"status" gorm:"type:varchar(20);default:'active';not null"`
	Settings     JSONMap      `json:"settings" gorm:"type:text"`
	MaxUsers     *int         `json:"max_users"`
	CurrentUsers int          `json:"current_users" gorm:"default:0;not null"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
	CreatedBy    string       `json:"created_by,omitempty" gorm:"type:varchar(255)"`
	ContactEmail string       `json:"contact_email,omitempty" gorm:"type:varchar(255)"`
	ContactPhone string       `json:"contact_phone,omitempty" gorm:"type:varchar(50)"`

	Licenses []License `json:"licenses,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// AtCapacity reports whether another user would exceed the configured limit.
// A nil MaxUsers means unlimited.
func (t *Tenant) AtCapacity() bool {
	return t.MaxUsers != nil && t.CurrentUsers >= *t.MaxUsers
}
