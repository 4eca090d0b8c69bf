package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"handyhub/internal/pkg/apperr"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// InvalidJSON is written when the request body cannot be bound.
func InvalidJSON(c *gin.Context) {
	Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
}

// ValidationFailed writes a field -> tag map produced by the validator package.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Validation failed", fields)
}

// FromError maps an error kind from apperr onto the envelope.
// Unclassified errors are reported as 500 and attached to the gin context
// so ErrorLogger records them.
func FromError(c *gin.Context, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		Error(c, status, code, "Internal server error")
		return
	}
	Error(c, status, code, apperr.Message(err))
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, apperr.ErrValidation):
		return http.StatusUnprocessableEntity, "VALIDATION_ERROR"
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict, "CONFLICT"
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, apperr.ErrPersistence):
		return http.StatusInternalServerError, "PERSISTENCE_ERROR"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR"
	}
}
