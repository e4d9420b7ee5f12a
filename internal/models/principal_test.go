// internal/models/principal_test.go
package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSuperAdminHasEveryPermission(t *testing.T) {
	principal := &Principal{
		UserID:   "u-1",
		UserType: UserTypeSuperAdmin,
	}

	assert.True(t, principal.IsSuperAdmin())
	assert.True(t, principal.HasPermission("frs_groups_create"))
	assert.True(t, principal.HasPermission("anything_at_all"))
	assert.True(t, principal.CanAccessOrganization("org-1"))
	assert.True(t, principal.CanAccessOrganization("org-2"))
}

func TestOrganizationUserPermissions(t *testing.T) {
	principal := &Principal{
		UserID:         "u-2",
		UserType:       UserTypeOrganizationUser,
		OrganizationID: "org-1",
		Permissions:    []string{"frs_groups_read", "frs_poi_read"},
	}

	assert.False(t, principal.IsSuperAdmin())
	assert.True(t, principal.HasPermission("frs_groups_read"))
	assert.False(t, principal.HasPermission("frs_groups_create"))
}

func TestOrganizationScoping(t *testing.T) {
	principal := &Principal{
		UserID:         "u-2",
		UserType:       UserTypeOrganizationUser,
		OrganizationID: "org-1",
	}

	assert.True(t, principal.CanAccessOrganization("org-1"))
	assert.False(t, principal.CanAccessOrganization("org-2"))
	assert.False(t, principal.CanAccessOrganization(""))
}
