// internal/services/identity_service_test.go
package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herambgvd/gvd-frs/internal/config"
	"github.com/herambgvd/gvd-frs/internal/models"
)

const testJWTSecret = "test-secret"

func signToken(t *testing.T, secret, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"userId": userID,
		"exp":    time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func umsServer(t *testing.T, users map[string]umsUserDetail) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.URL.Path[len("/api/users/"):]
		detail, ok := users[userID]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		json.NewEncoder(w).Encode(umsUserResponse{Success: true, Data: detail})
	}))
}

func identityWithServer(serverURL string) *IdentityService {
	return NewIdentityService(&config.IdentityConfig{
		BaseURL:   serverURL,
		JWTSecret: testJWTSecret,
		Timeout:   2,
	})
}

func TestAuthenticateActiveUser(t *testing.T) {
	server := umsServer(t, map[string]umsUserDetail{
		"u-1": {
			ID:             "u-1",
			Email:          "ops@example.com",
			UserType:       "organization_user",
			OrganizationID: "org-1",
			IsActive:       true,
			Permissions:    []string{"frs_groups_read"},
		},
	})
	defer server.Close()

	identity := identityWithServer(server.URL)
	principal, err := identity.Authenticate(context.Background(), signToken(t, testJWTSecret, "u-1"))

	require.NoError(t, err)
	assert.Equal(t, "u-1", principal.UserID)
	assert.Equal(t, models.UserTypeOrganizationUser, principal.UserType)
	assert.Equal(t, "org-1", principal.OrganizationID)
	assert.True(t, principal.HasPermission("frs_groups_read"))
}

func TestAuthenticateBadSignature(t *testing.T) {
	server := umsServer(t, nil)
	defer server.Close()

	identity := identityWithServer(server.URL)
	_, err := identity.Authenticate(context.Background(), signToken(t, "wrong-secret", "u-1"))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateInactiveUser(t *testing.T) {
	server := umsServer(t, map[string]umsUserDetail{
		"u-2": {ID: "u-2", UserType: "organization_user", OrganizationID: "org-1", IsActive: false},
	})
	defer server.Close()

	identity := identityWithServer(server.URL)
	_, err := identity.Authenticate(context.Background(), signToken(t, testJWTSecret, "u-2"))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateOrgUserWithoutOrg(t *testing.T) {
	server := umsServer(t, map[string]umsUserDetail{
		"u-3": {ID: "u-3", UserType: "organization_user", IsActive: true},
	})
	defer server.Close()

	identity := identityWithServer(server.URL)
	_, err := identity.Authenticate(context.Background(), signToken(t, testJWTSecret, "u-3"))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	server := umsServer(t, nil)
	defer server.Close()

	identity := identityWithServer(server.URL)
	_, err := identity.Authenticate(context.Background(), signToken(t, testJWTSecret, "ghost"))

	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthenticateUpstreamDown(t *testing.T) {
	server := umsServer(t, nil)
	server.Close() // connection refused from here on

	identity := identityWithServer(server.URL)
	_, err := identity.Authenticate(context.Background(), signToken(t, testJWTSecret, "u-1"))

	assert.ErrorIs(t, err, ErrUpstream)
}

func TestAuthenticateSuperAdminNeedsNoOrg(t *testing.T) {
	server := umsServer(t, map[string]umsUserDetail{
		"admin": {ID: "admin", UserType: "super_admin", IsActive: true},
	})
	defer server.Close()

	identity := identityWithServer(server.URL)
	principal, err := identity.Authenticate(context.Background(), signToken(t, testJWTSecret, "admin"))

	require.NoError(t, err)
	assert.True(t, principal.IsSuperAdmin())
}
