// internal/handlers/poi.go
package handlers

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/herambgvd/gvd-frs/internal/middleware"
	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

type POIHandler struct {
	poiService *services.POIService
}

func NewPOIHandler(poiService *services.POIService) *POIHandler {
	return &POIHandler{
		poiService: poiService,
	}
}

// POST /api/poi
func (h *POIHandler) CreatePOI(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.CreatePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	poi, err := h.poiService.CreatePOI(c.Request.Context(), principal, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, poi)
}

// GET /api/poi
func (h *POIHandler) ListPOIs(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	params := services.POIListParams{
		PaginationParams: utils.GetPaginationParams(c),
	}
	if gender := c.Query("gender"); gender != "" {
		params.Gender = &gender
	}
	if minStr := c.Query("min_age"); minStr != "" {
		if minAge, err := strconv.Atoi(minStr); err == nil {
			params.MinAge = &minAge
		}
	}
	if maxStr := c.Query("max_age"); maxStr != "" {
		if maxAge, err := strconv.Atoi(maxStr); err == nil {
			params.MaxAge = &maxAge
		}
	}
	if watchlistID := c.Query("tagged_watchlist_id"); watchlistID != "" {
		params.TaggedWatchlistID = &watchlistID
	}
	if activeStr := c.Query("is_active"); activeStr != "" {
		if active, err := strconv.ParseBool(activeStr); err == nil {
			params.IsActive = &active
		}
	}

	pois, total, err := h.poiService.ListPOIs(c.Request.Context(), principal, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(pois, total, params.PaginationParams)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}

// GET /api/poi/:personId
func (h *POIHandler) GetPOI(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	poi, err := h.poiService.GetPOI(c.Request.Context(), principal, c.Param("personId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, poi)
}

// PUT /api/poi/:personId
func (h *POIHandler) UpdatePOI(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.UpdatePOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	poi, err := h.poiService.UpdatePOI(c.Request.Context(), principal, c.Param("personId"), &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, poi)
}

// DELETE /api/poi/:personId
func (h *POIHandler) DeletePOI(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	if err := h.poiService.DeletePOI(c.Request.Context(), principal, c.Param("personId")); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Person deleted successfully"})
}

// POST /api/poi/:personId/image
func (h *POIHandler) UploadImage(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.BadRequestResponse(c, "Image file is required", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read uploaded file", nil)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.BadRequestResponse(c, "Unable to read uploaded file", nil)
		return
	}

	poi, err := h.poiService.UploadImage(
		c.Request.Context(), principal, c.Param("personId"),
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data,
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, poi)
}

// GET /api/poi/:personId/image
func (h *POIHandler) GetImage(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	url, err := h.poiService.GetImageURL(c.Request.Context(), principal, c.Param("personId"))
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"person_image_url": url})
}

// DELETE /api/poi/:personId/image
func (h *POIHandler) DeleteImage(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	if err := h.poiService.DeleteImage(c.Request.Context(), principal, c.Param("personId")); err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"message": "Image deleted successfully"})
}

// POST /api/poi/bulk
func (h *POIHandler) BulkOperation(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	var req services.BulkPOIRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.poiService.BulkOperation(c.Request.Context(), principal, &req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.SuccessResponse(c, result)
}
