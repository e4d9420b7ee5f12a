// internal/handlers/group.go
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/herambgvd/gvd-frs/internal/middleware"
	"github.com/herambgvd/gvd-frs/internal/models"
	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

type GroupHandler struct {
	groupService *services.GroupService
}

func NewGroupHandler(groupService *services.GroupService) *GroupHandler {
	return &GroupHandler{
		groupService: groupService,
	}
}

func groupResponses(groups []models.Group) []models.GroupResponse {
	out := make([]models.GroupResponse, len(groups))
	for i, g := range groups {
		out[i] = g.Response()
	}
	return out
}

// POST /api/groups
func (h *GroupHandler) CreateGroup(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.CreateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	group, err := h.groupService.CreateGroup(c.Request.Context(), principal, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, group.Response())
}

// GET /api/groups
func (h *GroupHandler) ListGroups(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	params := services.GroupListParams{
		PaginationParams: utils.GetPaginationParams(c),
		Organization:     c.Query("organization_id"),
	}
	if wt := c.Query("watchlist_type"); wt != "" {
		params.WatchlistType = &wt
	}
	if activeStr := c.Query("is_active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			params.IsActive = &active
		}
	}

	groups, total, err := h.groupService.ListGroups(c.Request.Context(), principal, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(groupResponses(groups), total, params.PaginationParams)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GET /api/groups/:id
func (h *GroupHandler) GetGroup(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	group, err := h.groupService.GetGroup(c.Request.Context(), principal, c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, group.Response())
}

// PUT /api/groups/:id
func (h *GroupHandler) UpdateGroup(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.UpdateGroupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	group, err := h.groupService.UpdateGroup(c.Request.Context(), principal, c.Param("id"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, group.Response())
}

// DELETE /api/groups/:id
func (h *GroupHandler) DeleteGroup(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	if err := h.groupService.DeleteGroup(c.Request.Context(), principal, c.Param("id")); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Group deleted successfully"})
}

// GET /api/groups/organization/:orgId
func (h *GroupHandler) GetOrganizationGroups(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	groups, err := h.groupService.GetOrganizationGroups(c.Request.Context(), principal, c.Param("orgId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, groupResponses(groups))
}
