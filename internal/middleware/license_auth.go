// internal/middleware/license_auth.go
package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

const (
	// APIKeyHeader carries the license key on the management API.
	APIKeyHeader = "X-API-Key"

	// ContextLicense is the gin context key holding the caller's license.
	ContextLicense = "license"
)

// LicenseAuth resolves the X-API-Key header through the key store's consume
// path: a successful pass costs one usage unit. Validation endpoints that
// must not mutate usage sit outside this middleware.
func LicenseAuth(keyStore services.KeyStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			utils.UnauthorizedResponse(c, "API key required")
			c.Abort()
			return
		}

		result, err := keyStore.Consume(c.Request.Context(), key)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("License lookup failed")
			utils.InternalErrorResponse(c, "Unable to validate API key")
			c.Abort()
			return
		}

		if !result.Valid {
			utils.UnauthorizedResponse(c, result.Message)
			c.Abort()
			return
		}

		c.Set(ContextLicense, result.License)
		c.Next()
	}
}

// RequireLicensePermission gates a route on a capability held by the
// authenticated license. Runs after LicenseAuth.
func RequireLicensePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		license := GetLicense(c)
		if license == nil {
			utils.UnauthorizedResponse(c, "API key required")
			c.Abort()
			return
		}

		if !license.HasPermission(permission) {
			utils.ForbiddenResponse(c, "Insufficient license permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
