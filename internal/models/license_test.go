// internal/models/license_test.go
package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func activeLicense() *License {
	return &License{
		LicenseKey:  "gvd-0123456789abcdef",
		ClientName:  "Test Client",
		ClientID:    "test-client",
		Permissions: StringList{"read", "write"},
		IsActive:    true,
	}
}

func TestEvaluateValid(t *testing.T) {
	license := activeLicense()

	valid, message := license.Evaluate(time.Now().UTC())

	assert.True(t, valid)
	assert.Equal(t, MsgLicenseValid, message)
}

func TestEvaluateInactive(t *testing.T) {
	license := activeLicense()
	license.IsActive = false

	valid, message := license.Evaluate(time.Now().UTC())

	assert.False(t, valid)
	assert.Equal(t, MsgLicenseInactive, message)
}

func TestEvaluateExpired(t *testing.T) {
	license := activeLicense()
	past := time.Now().UTC().Add(-time.Hour)
	license.ExpiresAt = &past

	valid, message := license.Evaluate(time.Now().UTC())

	assert.False(t, valid)
	assert.Equal(t, MsgLicenseExpired, message)
}

func TestEvaluateUsageExhausted(t *testing.T) {
	license := activeLicense()
	limit := 10
	license.UsageLimit = &limit
	license.CurrentUsage = 10

	valid, message := license.Evaluate(time.Now().UTC())

	assert.False(t, valid)
	assert.Equal(t, MsgLicenseLimitReached, message)
}

// Inactive must win over expired, and expired over exhausted.
func TestEvaluateOrder(t *testing.T) {
	license := activeLicense()
	license.IsActive = false
	past := time.Now().UTC().Add(-time.Hour)
	license.ExpiresAt = &past
	limit := 1
	license.UsageLimit = &limit
	license.CurrentUsage = 5

	_, message := license.Evaluate(time.Now().UTC())
	assert.Equal(t, MsgLicenseInactive, message)

	license.IsActive = true
	_, message = license.Evaluate(time.Now().UTC())
	assert.Equal(t, MsgLicenseExpired, message)

	license.ExpiresAt = nil
	_, message = license.Evaluate(time.Now().UTC())
	assert.Equal(t, MsgLicenseLimitReached, message)
}

func TestEvaluateNoLimits(t *testing.T) {
	license := activeLicense()
	license.CurrentUsage = 1_000_000

	valid, _ := license.Evaluate(time.Now().UTC())

	assert.True(t, valid)
}

func TestHasPermission(t *testing.T) {
	license := activeLicense()

	assert.True(t, license.HasPermission("read"))
	assert.True(t, license.HasPermission("write"))
	assert.False(t, license.HasPermission("admin"))
}

func TestPartialKey(t *testing.T) {
	license := activeLicense()

	assert.Equal(t, "gvd-0123456789ab...", license.PartialKey())
	assert.Equal(t, "short", PartialKey("short"))
}

func TestInfoNeverNilPermissions(t *testing.T) {
	license := activeLicense()
	license.Permissions = nil

	info := license.Info()

	assert.NotNil(t, info.Permissions)
	assert.Empty(t, info.Permissions)
}
