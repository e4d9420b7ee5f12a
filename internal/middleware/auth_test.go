// internal/middleware/auth_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/herambgvd/gvd-frs/internal/config"
	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/services"
)

func bearerRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	identity := services.NewIdentityService(&config.IdentityConfig{
		BaseURL:   "http://127.0.0.1:1", // never reached for header failures
		JWTSecret: "secret",
		Timeout:   1,
	})

	r := gin.New()
	r.GET("/resource", BearerAuth(identity), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func TestBearerAuthMissingHeader(t *testing.T) {
	r := bearerRouter()

	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBearerAuthMalformedHeader(t *testing.T) {
	r := bearerRouter()

	for _, header := range []string{"Basic abc123", "Bearer", "just-a-token"} {
		req := httptest.NewRequest(http.MethodGet, "/resource", nil)
		req.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestRequirePermissionWithPrincipal(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/resource",
		func(c *gin.Context) {
			c.Set(ContextPrincipal, &models.Principal{
				UserID:         "u-1",
				UserType:       models.UserTypeOrganizationUser,
				OrganizationID: "org-1",
				Permissions:    []string{"frs_groups_read"},
			})
		},
		RequirePermission("frs_groups_read"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	r.GET("/forbidden",
		func(c *gin.Context) {
			c.Set(ContextPrincipal, &models.Principal{
				UserID:   "u-1",
				UserType: models.UserTypeOrganizationUser,
			})
		},
		RequirePermission("frs_groups_delete"),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/resource", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/forbidden", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
