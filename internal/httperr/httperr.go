package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

// Respond maps err onto the response. Business errors become 400 with their
// message, ErrNotFound becomes 404, unique violations become 400, and
// anything else is logged and answered with a generic 500.
func Respond(c *gin.Context, log *zap.Logger, err error) {
	var be BusinessError
	switch {
	case errors.As(err, &be):
		BadRequest(c, be.Code, Message(be.Code))
	case errors.Is(err, ErrNotFound):
		NotFound(c, "not_found", Message("not_found"))
	case IsUniqueViolation(err):
		BadRequest(c, "duplicate_value", Message("duplicate_value"))
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		Internal(c, "internal_error", "Erro interno.")
	}
}
