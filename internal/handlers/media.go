// internal/handlers/media.go
package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"github.com/herambgvd/gvd-frs/internal/middleware"
	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

type MediaHandler struct {
	mediaService *services.MediaService
}

func NewMediaHandler(mediaService *services.MediaService) *MediaHandler {
	return &MediaHandler{
		mediaService: mediaService,
	}
}

// POST /api/media/upload-multiple
func (h *MediaHandler) UploadMultiple(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Invalid multipart form", err.Error())
		return
	}

	fileHeaders := form.File["files"]
	if len(fileHeaders) == 0 {
		utils.BadRequestResponse(c, "At least one file is required", nil)
		return
	}

	files := make([]services.MediaFile, 0, len(fileHeaders))
	for _, fileHeader := range fileHeaders {
		file, err := fileHeader.Open()
		if err != nil {
			utils.BadRequestResponse(c, "Unable to read uploaded file "+fileHeader.Filename, nil)
			return
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			utils.BadRequestResponse(c, "Unable to read uploaded file "+fileHeader.Filename, nil)
			return
		}

		files = append(files, services.MediaFile{
			Filename:    fileHeader.Filename,
			ContentType: fileHeader.Header.Get("Content-Type"),
			Size:        fileHeader.Size,
			Data:        data,
		})
	}

	uploads, err := h.mediaService.UploadFiles(c.Request.Context(), principal, files)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"count": len(uploads),
		"files": uploads,
	})
}

// GET /api/media
func (h *MediaHandler) ListUploads(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		utils.UnauthorizedResponse(c, "Authentication required")
		return
	}

	params := utils.GetPaginationParams(c)

	uploads, total, err := h.mediaService.ListUploads(c.Request.Context(), principal, params)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	result := utils.CreatePaginationResult(uploads, total, params)
	utils.SetPaginationHeaders(c, result)
	utils.PaginatedResponse(c, result)
}
