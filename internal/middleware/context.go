// internal/middleware/context.go
package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/herambgvd/gvd-frs/internal/models"
)

// GetLicense returns the license set by LicenseAuth, or nil.
func GetLicense(c *gin.Context) *models.License {
	value, exists := c.Get(ContextLicense)
	if !exists {
		return nil
	}
	license, _ := value.(*models.License)
	return license
}

// GetPrincipal returns the principal set by BearerAuth, or nil.
func GetPrincipal(c *gin.Context) *models.Principal {
	value, exists := c.Get(ContextPrincipal)
	if !exists {
		return nil
	}
	principal, _ := value.(*models.Principal)
	return principal
}
