package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"myflix-api/internal/service"
)

// handleServiceError maps service sentinels to HTTP statuses. Anything unrecognised is
// an internal error whose text is only logged.
func (h *Handler) handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserAlreadyExists),
		errors.Is(err, service.ErrEmailAlreadyExists),
		errors.Is(err, service.ErrPermissionDenied),
		errors.Is(err, service.ErrInvalidMovieID),
		errors.Is(err, service.ErrUnknownMovie),
		errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrPasswordTooLong):
		validationFailed(c, []fieldError{{Field: "Password", Message: "Password must be at most 72 bytes long"}})
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrMovieNotFound),
		errors.Is(err, service.ErrGenreNotFound),
		errors.Is(err, service.ErrDirectorNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		h.internalError(c, err)
	}
}

func (h *Handler) internalError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

func validationFailed(c *gin.Context, errs []fieldError) {
	c.JSON(http.StatusUnprocessableEntity, gin.H{"errors": errs})
}
