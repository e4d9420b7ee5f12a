// internal/handlers/tenant.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

type TenantHandler struct {
	tenantService *services.TenantService
}

func NewTenantHandler(tenantService *services.TenantService) *TenantHandler {
	return &TenantHandler{
		tenantService: tenantService,
	}
}

// POST /api/v1/tenants
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req services.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, tenant)
}

// GET /api/v1/tenants
func (h *TenantHandler) ListTenants(c *gin.Context) {
	skip, limit := utils.GetSkipLimit(c)
	params := services.TenantListParams{Skip: skip, Limit: limit}

	if statusStr := c.Query("status"); statusStr != "" {
		status := models.TenantStatus(statusStr)
		params.Status = &status
	}

	tenants, total, err := h.tenantService.ListTenants(c.Request.Context(), params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponseWithMeta(c, tenants, gin.H{
		"total": total,
		"skip":  skip,
		"limit": limit,
	})
}

// GET /api/v1/tenants/:id
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenant, err := h.tenantService.GetTenant(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, tenant)
}

// PUT /api/v1/tenants/:id
func (h *TenantHandler) UpdateTenant(c *gin.Context) {
	var req services.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	tenant, err := h.tenantService.UpdateTenant(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, tenant)
}

// DELETE /api/v1/tenants/:id
func (h *TenantHandler) DeleteTenant(c *gin.Context) {
	if err := h.tenantService.DeleteTenant(c.Request.Context(), c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.NoContentResponse(c)
}

func (h *TenantHandler) setStatus(c *gin.Context, status models.TenantStatus) {
	tenant, err := h.tenantService.SetStatus(c.Request.Context(), c.Param("id"), status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, tenant)
}

// POST /api/v1/tenants/:id/activate
func (h *TenantHandler) ActivateTenant(c *gin.Context) {
	h.setStatus(c, models.TenantStatusActive)
}

// POST /api/v1/tenants/:id/deactivate
func (h *TenantHandler) DeactivateTenant(c *gin.Context) {
	h.setStatus(c, models.TenantStatusInactive)
}

// POST /api/v1/tenants/:id/suspend
func (h *TenantHandler) SuspendTenant(c *gin.Context) {
	h.setStatus(c, models.TenantStatusSuspended)
}

// POST /api/v1/tenants/:id/users/increment
func (h *TenantHandler) IncrementUsers(c *gin.Context) {
	tenant, err := h.tenantService.IncrementUsers(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, tenant)
}

// POST /api/v1/tenants/:id/users/decrement
func (h *TenantHandler) DecrementUsers(c *gin.Context) {
	tenant, err := h.tenantService.DecrementUsers(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, tenant)
}

// GET /api/v1/tenants/stats/summary
func (h *TenantHandler) GetStats(c *gin.Context) {
	stats, err := h.tenantService.GetStats(c.Request.Context())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, stats)
}
