// internal/services/group_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestGroupNameFilterReleasesDeactivatedNames(t *testing.T) {
	filter := groupNameFilter("org-1", "VIP", primitive.NilObjectID)

	// A deactivated group must not block reuse of its name.
	assert.Equal(t, true, filter["is_active"])
	assert.Equal(t, "org-1", filter["organization_id"])
	assert.NotContains(t, filter, "_id")

	pattern, ok := filter["group_name"].(primitive.Regex)
	require.True(t, ok)
	assert.Equal(t, "^VIP$", pattern.Pattern)
	assert.Equal(t, "i", pattern.Options)
}

func TestGroupNameFilterExcludesRenamedGroup(t *testing.T) {
	excludeID := primitive.NewObjectID()
	filter := groupNameFilter("org-1", "VIP", excludeID)

	assert.Equal(t, bson.M{"$ne": excludeID}, filter["_id"])
}

func TestGroupNameFilterQuotesRegexMeta(t *testing.T) {
	filter := groupNameFilter("org-1", "A+ (priority)", primitive.NilObjectID)

	pattern := filter["group_name"].(primitive.Regex)
	assert.Equal(t, `^A\+ \(priority\)$`, pattern.Pattern)
}

func TestGroupListFilterDefaultsToActive(t *testing.T) {
	filter := groupListFilter("org-1", GroupListParams{})

	assert.Equal(t, true, filter["is_active"])
	assert.Equal(t, "org-1", filter["organization_id"])
}

func TestGroupListFilterExplicitInactive(t *testing.T) {
	filter := groupListFilter("org-1", GroupListParams{IsActive: boolPtr(false)})

	assert.Equal(t, false, filter["is_active"])
}

func TestGroupListFilterNoOrgScopeForEmptyOrg(t *testing.T) {
	filter := groupListFilter("", GroupListParams{})

	assert.NotContains(t, filter, "organization_id")
}

func TestGroupListFilterSearchAndType(t *testing.T) {
	wt := "blacklist"
	params := GroupListParams{WatchlistType: &wt}
	params.Search = "vip"

	filter := groupListFilter("org-1", params)
	assert.Equal(t, "blacklist", filter["watchlist_type"])
	assert.Contains(t, filter, "$or")
}
