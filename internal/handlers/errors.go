package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	dom "github.com/RaajPratap/books-management-system/internal/domain"
	"github.com/RaajPratap/books-management-system/internal/dto"

	"github.com/gin-gonic/gin"
)

// statusFor maps a failure kind to its HTTP status. Unknown errors are 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, dom.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, dom.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, dom.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, dom.ErrDuplicateKey):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeError is the single place that turns service errors into responses.
// Internal errors are logged and answered without detail.
func writeError(c *gin.Context, log *slog.Logger, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.ErrorContext(c.Request.Context(), "request failed",
			"method", c.Request.Method, "path", c.FullPath(), "err", err)
		c.JSON(status, dto.MessageResponse{Message: "internal server error"})
		return
	}
	c.JSON(status, dto.MessageResponse{Message: publicMessage(err)})
}

// publicMessage strips the sentinel prefix from "kind: detail" messages.
func publicMessage(err error) string {
	msg := err.Error()
	for _, kind := range []error{dom.ErrValidation, dom.ErrUnauthorized, dom.ErrNotFound, dom.ErrDuplicateKey} {
		if rest, ok := strings.CutPrefix(msg, kind.Error()+": "); ok {
			return rest
		}
	}
	return msg
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, dto.MessageResponse{Message: err.Error()})
}
