// internal/models/tenant_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAtCapacity(t *testing.T) {
	max := 3

	unlimited := &Tenant{ID: "t-1", CurrentUsers: 1000}
	assert.False(t, unlimited.AtCapacity())

	below := &Tenant{ID: "t-2", MaxUsers: &max, CurrentUsers: 2}
	assert.False(t, below.AtCapacity())

	at := &Tenant{ID: "t-3", MaxUsers: &max, CurrentUsers: 3}
	assert.True(t, at.AtCapacity())
}
