package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/runwayrivets/pictopost-api/internal/ai"
	"github.com/runwayrivets/pictopost-api/internal/dto"
	"github.com/runwayrivets/pictopost-api/internal/repository"
	"github.com/runwayrivets/pictopost-api/internal/service"
)

// respondError maps service and repository errors to HTTP statuses and the
// standard failure envelope. Anything unrecognized is a 500; upstream
// provider and eBay errors fall through here with their message intact.
func respondError(c *gin.Context, err error) {
	c.JSON(statusForError(err), dto.NewErrorResponse(err.Error()))
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, repository.ErrNotFound),
		errors.Is(err, service.ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, ai.ErrUnsupportedProvider),
		errors.Is(err, ai.ErrInvalidKeyFormat),
		errors.Is(err, ai.ErrDailyLimitExceeded),
		errors.Is(err, service.ErrNoProviderConfigured),
		errors.Is(err, service.ErrDraftLimitExceeded),
		errors.Is(err, service.ErrNoEBayCredentials),
		errors.Is(err, service.ErrNoFilesUploaded):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
