// internal/models/license.go
package models

import (
	"time"
)

// License is an opaque bearer credential granting a bounded capability set,
// optionally rate- and time-limited. Keys are never physically deleted in the
// primary flow; revocation flips IsActive.
type License struct {
	ID           uint       `json:"id" gorm:"primaryKey"`
	LicenseKey   string     `json:"license_key" gorm:"type:varchar(255);uniqueIndex;not null"`
	ClientName   string     `json:"client_name" gorm:"type:varchar(255);not null"`
	ClientID     string     `json:"client_id" gorm:"type:varchar(255);uniqueIndex;not null"`
	Permissions  StringList `json:"permissions" gorm:"type:text"`
	IsActive     bool       `json:"is_active" gorm:"default:true;not null"`
	ExpiresAt    *time.Time `json:"expires_at"`
	UsageLimit   *int       `json:"usage_limit"`
	CurrentUsage int        `json:"current_usage" gorm:"default:0;not null"`
	TenantID     *string    `json:"tenant_id" gorm:"type:varchar(255);index"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID;constraint:OnDelete:CASCADE"`
}

// Validation rejection messages. The exact strings are part of the API.
const (
	MsgLicenseNotFound     = "License key not found"
	MsgLicenseInactive     = "License is inactive"
	MsgLicenseExpired      = "License has expired"
	MsgLicenseLimitReached = "License usage limit reached"
	MsgLicenseValid        = "License is valid"
)

// Evaluate runs the validity rules in fixed order: inactive, expired,
// usage-exhausted. It never mutates the license; the consume path performs
// the usage increment separately.
func (l *License) Evaluate(now time.Time) (bool, string) {
	if !l.IsActive {
		return false, MsgLicenseInactive
	}

	if l.ExpiresAt != nil && now.UTC().After(l.ExpiresAt.UTC()) {
		return false, MsgLicenseExpired
	}

	if l.UsageLimit != nil && l.CurrentUsage >= *l.UsageLimit {
		return false, MsgLicenseLimitReached
	}

	return true, MsgLicenseValid
}

// HasPermission reports whether the license carries the given capability.
func (l *License) HasPermission(permission string) bool {
	return l.Permissions.Contains(permission)
}

// PartialKey returns the loggable form of the key. Full keys never hit logs.
func (l *License) PartialKey() string {
	return PartialKey(l.LicenseKey)
}

func PartialKey(key string) string {
	if len(key) <= 16 {
		return key
	}
	return key[:16] + "..."
}

// LicenseInfo is the metadata view returned by the inspect paths.
type LicenseInfo struct {
	ClientName   string     `json:"client_name"`
	ClientID     string     `json:"client_id"`
	Permissions  []string   `json:"permissions"`
	IsActive     bool       `json:"is_active"`
	ExpiresAt    *time.Time `json:"expires_at"`
	CurrentUsage int        `json:"current_usage"`
	UsageLimit   *int       `json:"usage_limit"`
	TenantID     *string    `json:"tenant_id"`
	CreatedAt    time.Time  `json:"created_at"`
}

func (l *License) Info() LicenseInfo {
	permissions := []string(l.Permissions)
	if permissions == nil {
		permissions = []string{}
	}
	return LicenseInfo{
		ClientName:   l.ClientName,
		ClientID:     l.ClientID,
		Permissions:  permissions,
		IsActive:     l.IsActive,
		ExpiresAt:    l.ExpiresAt,
		CurrentUsage: l.CurrentUsage,
		UsageLimit:   l.UsageLimit,
		TenantID:     l.TenantID,
		CreatedAt:    l.CreatedAt,
	}
}
