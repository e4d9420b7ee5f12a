// internal/services/poi_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestNormalizeFullName(t *testing.T) {
	assert.Equal(t, "John Smith", normalizeFullName("john smith"))
	assert.Equal(t, "John Smith", normalizeFullName("JOHN SMITH"))
	assert.Equal(t, "John Smith", normalizeFullName("  john   smith  "))
	assert.Equal(t, "Jean-Pierre Dupont", normalizeFullName("jean-pierre dupont"))
}

func TestPOIImageTypes(t *testing.T) {
	assert.True(t, poiImageTypes["image/jpeg"])
	assert.True(t, poiImageTypes["image/png"])
	assert.False(t, poiImageTypes["video/mp4"])
	assert.False(t, poiImageTypes["image/gif"])
}

func TestPOILookupFilterHidesDeactivated(t *testing.T) {
	filter := poiLookupFilter("person-1", false)
	assert.Equal(t, "person-1", filter["person_id"])
	assert.Equal(t, true, filter["is_active"])
}

func TestPOILookupFilterIncludeInactive(t *testing.T) {
	filter := poiLookupFilter("person-1", true)
	assert.Equal(t, "person-1", filter["person_id"])
	assert.NotContains(t, filter, "is_active")
}

func TestPOIListFilterDefaultsToActive(t *testing.T) {
	filter := poiListFilter("org-1", POIListParams{})
	assert.Equal(t, true, filter["is_active"])
	assert.Equal(t, "org-1", filter["organization_id"])
}

func TestPOIListFilterExplicitInactive(t *testing.T) {
	filter := poiListFilter("org-1", POIListParams{IsActive: boolPtr(false)})
	assert.Equal(t, false, filter["is_active"])
}

func TestPOIListFilterNoOrgScopeForEmptyOrg(t *testing.T) {
	filter := poiListFilter("", POIListParams{})
	assert.NotContains(t, filter, "organization_id")
}
