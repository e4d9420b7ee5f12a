// internal/handlers/license.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/herambgvd/gvd-frs/internal/middleware"
	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

type LicenseHandler struct {
	licenseService *services.LicenseService
}

func NewLicenseHandler(licenseService *services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
	}
}

func parseLicenseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid license ID", nil)
		return 0, false
	}
	return uint(id), true
}

// POST /api/v1/licenses
func (h *LicenseHandler) CreateLicense(c *gin.Context) {
	var req services.CreateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	license, err := h.licenseService.CreateLicense(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, license)
}

// GET /api/v1/licenses
func (h *LicenseHandler) ListLicenses(c *gin.Context) {
	skip, limit := utils.GetSkipLimit(c)
	params := services.LicenseListParams{Skip: skip, Limit: limit}

	if activeStr := c.Query("is_active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			params.IsActive = &active
		}
	}
	if tenantID := c.Query("tenant_id"); tenantID != "" {
		params.TenantID = &tenantID
	}

	licenses, total, err := h.licenseService.ListLicenses(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, licenses, gin.H{
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// GET /api/v1/licenses/:id
func (h *LicenseHandler) GetLicense(c *gin.Context) {
	id, ok := parseLicenseID(c)
	if !ok {
		return
	}

	license, err := h.licenseService.GetLicense(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}

// PUT /api/v1/licenses/:id
func (h *LicenseHandler) UpdateLicense(c *gin.Context) {
	id, ok := parseLicenseID(c)
	if !ok {
		return
	}

	var req services.UpdateLicenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	license, err := h.licenseService.UpdateLicense(c.Request.Context(), id, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}

// DELETE /api/v1/licenses/:id
func (h *LicenseHandler) DeleteLicense(c *gin.Context) {
	id, ok := parseLicenseID(c)
	if !ok {
		return
	}

	if err := h.licenseService.DeleteLicense(c.Request.Context(), id); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

// POST /api/v1/licenses/validate
//
// Inspect path: never consumes usage and always answers 200; the verdict is
// in the body.
func (h *LicenseHandler) ValidateLicense(c *gin.Context) {
	key := c.Query("license_key")
	if key == "" {
		utils.BadRequestResponse(c, "license_key query parameter is required", nil)
		return
	}

	result, err := h.licenseService.ValidateLicense(c.Request.Context(), key)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	body := gin.H{
		"valid":   result.Valid,
		"message": result.Message,
	}
	if result.Valid && result.License != nil {
		body["license_info"] = result.License.Info()
	}

	utils.SuccessResponse(c, body)
}

// POST /api/v1/licenses/:id/revoke
func (h *LicenseHandler) RevokeLicense(c *gin.Context) {
	id, ok := parseLicenseID(c)
	if !ok {
		return
	}

	license, err := h.licenseService.RevokeLicense(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}

// POST /api/v1/licenses/:id/activate
func (h *LicenseHandler) ActivateLicense(c *gin.Context) {
	id, ok := parseLicenseID(c)
	if !ok {
		return
	}

	license, err := h.licenseService.ActivateLicense(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}

// POST /api/v1/licenses/:id/reset-usage
func (h *LicenseHandler) ResetUsage(c *gin.Context) {
	id, ok := parseLicenseID(c)
	if !ok {
		return
	}

	license, err := h.licenseService.ResetUsage(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, license)
}

// GET /api/v1/licenses/stats/summary
func (h *LicenseHandler) GetStats(c *gin.Context) {
	stats, err := h.licenseService.GetStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}

// GET /api/v1/licenses/my-info
//
// The middleware already authenticated (and charged) the key; this just
// reflects the caller's own license metadata.
func (h *LicenseHandler) GetMyInfo(c *gin.Context) {
	license := middleware.GetLicense(c)
	if license == nil {
		utils.UnauthorizedResponse(c, "API key required")
		return
	}

	utils.SuccessResponse(c, license.Info())
}
