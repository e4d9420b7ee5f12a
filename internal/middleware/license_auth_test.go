// internal/middleware/license_auth_test.go
package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/services"
)

// fakeKeyStore implements services.KeyStore over a map, mirroring the consume
// semantics of the real store.
type fakeKeyStore struct {
	licenses map[string]*models.License
	consumed map[string]int
}

func newFakeKeyStore(licenses ...*models.License) *fakeKeyStore {
	s := &fakeKeyStore{
		licenses: make(map[string]*models.License),
		consumed: make(map[string]int),
	}
	for _, l := range licenses {
		s.licenses[l.LicenseKey] = l
	}
	return s
}

func (s *fakeKeyStore) Get(_ context.Context, key string) (*models.License, error) {
	license, ok := s.licenses[key]
	if !ok {
		return nil, services.ErrNotFound
	}
	return license, nil
}

func (s *fakeKeyStore) Put(_ context.Context, license *models.License) error {
	if _, ok := s.licenses[license.LicenseKey]; !ok {
		s.licenses[license.LicenseKey] = license
	}
	return nil
}

func (s *fakeKeyStore) Consume(_ context.Context, key string) (services.ValidationResult, error) {
	license, ok := s.licenses[key]
	if !ok {
		return services.ValidationResult{Valid: false, Message: models.MsgLicenseNotFound}, nil
	}

	valid, message := license.Evaluate(time.Now().UTC())
	if valid {
		license.CurrentUsage++
		s.consumed[key]++
	}
	return services.ValidationResult{Valid: valid, Message: message, License: license}, nil
}

func testLicense(key string, permissions ...string) *models.License {
	return &models.License{
		LicenseKey:  key,
		ClientName:  "Test",
		ClientID:    "test-" + key,
		Permissions: models.StringList(permissions),
		IsActive:    true,
	}
}

func licenseRouter(store services.KeyStore, permission string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("", LicenseAuth(store))
	if permission != "" {
		protected.Use(RequireLicensePermission(permission))
	}
	protected.GET("/resource", func(c *gin.Context) {
		license := GetLicense(c)
		c.JSON(http.StatusOK, gin.H{"client_id": license.ClientID})
	})

	return r
}

func doRequest(r *gin.Engine, key string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	if key != "" {
		req.Header.Set(APIKeyHeader, key)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestLicenseAuthMissingKey(t *testing.T) {
	r := licenseRouter(newFakeKeyStore(), "")

	w := doRequest(r, "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLicenseAuthUnknownKey(t *testing.T) {
	r := licenseRouter(newFakeKeyStore(), "")

	w := doRequest(r, "gvd-does-not-exist")

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, models.MsgLicenseNotFound, errObj["message"])
}

func TestLicenseAuthInactiveKey(t *testing.T) {
	license := testLicense("gvd-inactive0000", "read")
	license.IsActive = false
	r := licenseRouter(newFakeKeyStore(license), "")

	w := doRequest(r, license.LicenseKey)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, models.MsgLicenseInactive, errObj["message"])
}

func TestLicenseAuthConsumesUsage(t *testing.T) {
	license := testLicense("gvd-valid0000000", "read")
	store := newFakeKeyStore(license)
	r := licenseRouter(store, "")

	w := doRequest(r, license.LicenseKey)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, store.consumed[license.LicenseKey])

	doRequest(r, license.LicenseKey)
	assert.Equal(t, 2, store.consumed[license.LicenseKey])
}

func TestRequireLicensePermission(t *testing.T) {
	license := testLicense("gvd-reader000000", "read")
	store := newFakeKeyStore(license)

	readRouter := licenseRouter(store, "read")
	assert.Equal(t, http.StatusOK, doRequest(readRouter, license.LicenseKey).Code)

	adminRouter := licenseRouter(store, "admin")
	assert.Equal(t, http.StatusForbidden, doRequest(adminRouter, license.LicenseKey).Code)
}

func TestLicenseAuthUsageLimitBoundary(t *testing.T) {
	license := testLicense("gvd-limited00000", "read")
	limit := 2
	license.UsageLimit = &limit
	store := newFakeKeyStore(license)
	r := licenseRouter(store, "")

	assert.Equal(t, http.StatusOK, doRequest(r, license.LicenseKey).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, license.LicenseKey).Code)

	w := doRequest(r, license.LicenseKey)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	errObj := body["error"].(map[string]interface{})
	assert.Equal(t, models.MsgLicenseLimitReached, errObj["message"])
}
