package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/martijn/jobtrack/internal/api/dto"
	"github.com/martijn/jobtrack/internal/core/service"
)

var statusByKind = map[service.ErrorKind]int{
	service.KindInvalidUsername:       http.StatusBadRequest,
	service.KindUsernameTaken:         http.StatusConflict,
	service.KindEmailTaken:            http.StatusConflict,
	service.KindInvalidEmail:          http.StatusBadRequest,
	service.KindWeakPassword:          http.StatusBadRequest,
	service.KindInvalidOrExpiredToken: http.StatusBadRequest,
	service.KindUserNotFound:          http.StatusUnauthorized,
	service.KindInvalidPassword:       http.StatusUnauthorized,
	service.KindEmailNotRegistered:    http.StatusNotFound,
}

// writeCredentialError translates a CredentialStore error into a JSON response.
// Storage failures never expose their cause.
func writeCredentialError(c *gin.Context, err error) {
	var credErr *service.CredentialError
	if !errors.As(err, &credErr) || credErr.Kind == service.KindStorageFailure {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
			Error:   "Internal Server Error",
			Message: "An unexpected error occurred",
			Code:    http.StatusInternalServerError,
			Kind:    string(service.KindStorageFailure),
		})
		return
	}

	status, ok := statusByKind[credErr.Kind]
	if !ok {
		status = http.StatusBadRequest
	}

	c.JSON(status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: credErr.Message,
		Code:    status,
		Kind:    string(credErr.Kind),
	})
}

// bindJSON decodes the request body into req and writes a 400 on failure.
func bindJSON(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Bad Request",
			Message: err.Error(),
			Code:    http.StatusBadRequest,
		})
		return false
	}
	return true
}
