package http

import (
	"errors"
	"log"
	"net/http"

	"chronicle/internal/domain"

	"github.com/gin-gonic/gin"
)

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// writeError maps domain sentinels onto statuses. Errors outside the domain
// taxonomy are logged and answered with a fixed message; their text is
// infrastructure detail and never reaches the client.
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeErrorCode(c, http.StatusBadRequest, "INVALID_ARGUMENT", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeErrorCode(c, http.StatusUnauthorized, "UNAUTHORIZED", err.Error())
	case errors.Is(err, domain.ErrForbidden):
		writeErrorCode(c, http.StatusForbidden, "FORBIDDEN", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		writeErrorCode(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, domain.ErrConflict):
		writeErrorCode(c, http.StatusConflict, "CONFLICT", err.Error())
	default:
		log.Printf("internal error on %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		writeErrorCode(c, http.StatusInternalServerError, "INTERNAL", "internal error")
	}
}

func writeErrorCode(c *gin.Context, status int, code, message string) {
	c.JSON(status, errorResponse{
		Code:    code,
		Message: message,
	})
}
