// internal/handlers/errors.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/herambgvd/gvd-frs/internal/services"
	"github.com/herambgvd/gvd-frs/internal/utils"
)

// handleServiceError maps a service error onto the HTTP error taxonomy.
// Anything unclassified becomes a generic 500 so internals never leak.
func handleServiceError(c *gin.Context, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		utils.ValidationErrorResponse(c, utils.GetValidationErrors(validationErrs))
		return
	}

	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFoundResponse(c, err.Error())
	case errors.Is(err, services.ErrInvalid):
		utils.BadRequestResponse(c, err.Error(), nil)
	case errors.Is(err, services.ErrConflict):
		utils.ConflictResponse(c, err.Error())
	case errors.Is(err, services.ErrForbidden):
		utils.ForbiddenResponse(c, err.Error())
	case errors.Is(err, services.ErrUnauthenticated):
		utils.UnauthorizedResponse(c, err.Error())
	case errors.Is(err, services.ErrUpstream):
		utils.UpstreamErrorResponse(c, "Upstream service unavailable")
	default:
		logrus.WithFields(logrus.Fields{
			"path":  c.Request.URL.Path,
			"error": err.Error(),
		}).Error("Unhandled service error")
		utils.InternalErrorResponse(c, "Internal server error")
	}
}
