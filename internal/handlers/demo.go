// internal/handlers/demo.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/herambgvd/gvd-frs/internal/config"
	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

// DemoHandler serves the informational endpoints used for smoke-testing a
// deployment with the seeded demo keys.
type DemoHandler struct {
	cfg            *config.Config
	licenseService *services.LicenseService
	tenantService  *services.TenantService
}

func NewDemoHandler(cfg *config.Config, licenseService *services.LicenseService, tenantService *services.TenantService) *DemoHandler {
	return &DemoHandler{
		cfg:            cfg,
		licenseService: licenseService,
		tenantService:  tenantService,
	}
}

// GET /api/v1/demo/
func (h *DemoHandler) GetInfo(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"name":        h.cfg.AppName,
		"version":     h.cfg.AppVersion,
		"environment": h.cfg.Environment,
		"features": []string{
			"license management",
			"tenant management",
			"watchlist groups",
			"persons of interest",
			"media uploads",
		},
		"demo_keys": gin.H{
			"basic":   "gvd-demo-key-12345",
			"premium": "gvd-premium-key-67890",
		},
	})
}

// GET /api/v1/demo/stats
//
// Statistics are best-effort here: a storage hiccup degrades the payload
// instead of failing the endpoint.
func (h *DemoHandler) GetStats(c *gin.Context) {
	ctx := c.Request.Context()

	licenseStats, licErr := h.licenseService.GetStats(ctx)
	tenantStats, tenErr := h.tenantService.GetStats(ctx)
	if licErr != nil || tenErr != nil {
		utils.SuccessResponse(c, gin.H{
			"message": "Unable to retrieve statistics",
		})
		return
	}

	utils.SuccessResponse(c, gin.H{
		"licenses": gin.H{
			"total":    licenseStats.TotalLicenses,
			"active":   licenseStats.ActiveLicenses,
			"inactive": licenseStats.InactiveLicenses,
		},
		"tenants": gin.H{
			"total":    tenantStats.TotalTenants,
			"active":   tenantStats.ActiveTenants,
			"inactive": tenantStats.InactiveTenants,
		},
	})
}

// GET /health
func Health(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": cfg.AppName,
			"version": cfg.AppVersion,
		})
	}
}
