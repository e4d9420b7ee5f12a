// internal/middleware/auth.go
package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

// ContextPrincipal is the gin context key holding the authenticated caller.
const ContextPrincipal = "principal"

// BearerAuth authenticates FRS API requests: the bearer token is resolved to
// a Principal through the identity service, once per request. Downstream code
// reads the Principal and never re-derives identity fields.
func BearerAuth(identity *services.IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.UnauthorizedResponse(c, "Authorization header required")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			utils.UnauthorizedResponse(c, "Invalid authorization header")
			c.Abort()
			return
		}

		principal, err := identity.Authenticate(c.Request.Context(), parts[1])
		if err != nil {
			switch {
			case errors.Is(err, services.ErrUnauthenticated):
				utils.UnauthorizedResponse(c, "Invalid or expired token")
			case errors.Is(err, services.ErrUpstream):
				utils.UpstreamErrorResponse(c, "User service unavailable")
			default:
				logrus.WithField("error", err.Error()).Error("Authentication failed")
				utils.InternalErrorResponse(c, "Authentication failed")
			}
			c.Abort()
			return
		}

		c.Set(ContextPrincipal, principal)
		c.Next()
	}
}

// RequirePermission gates a route on a user permission. Super admins pass
// implicitly. Runs after BearerAuth.
func RequirePermission(permission string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := GetPrincipal(c)
		if principal == nil {
			utils.UnauthorizedResponse(c, "Authentication required")
			c.Abort()
			return
		}

		if !principal.HasPermission(permission) {
			utils.ForbiddenResponse(c, "Insufficient permissions")
			c.Abort()
			return
		}

		c.Next()
	}
}
