package handler

import (
	"errors"
	"net/http"
	"strconv"

	"hospital-management/internal/service"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
)

// respondError maps service errors onto the error envelope. Unexpected errors
// are attached to the context for the request logger and answered with fallback.
func respondError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, service.ErrValidation):
		utils.ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		utils.ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrUnrecognizedRole), errors.Is(err, service.ErrForbidden):
		utils.ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		utils.ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrConflict), errors.Is(err, service.ErrInvalidTransition):
		utils.ErrorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrRegistrationIncomplete):
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, service.ErrRegistrationIncomplete.Error())
	default:
		_ = c.Error(err)
		utils.ErrorResponse(c, http.StatusInternalServerError, fallback)
	}
}

// parseID reads a positive numeric path parameter
func parseID(c *gin.Context, name, label string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+label+" ID")
		return 0, false
	}
	return uint(id), true
}

// queryID reads an optional numeric query parameter; absent means 0
func queryID(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}
