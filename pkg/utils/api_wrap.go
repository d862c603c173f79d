package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceID(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceID(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceID(c),
	})
}

func HandleServiceError(c *gin.Context, logger *zap.Logger, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrMalformedInput):
		RespondError(c, http.StatusBadRequest, "Please provide a valid travel request")
	case errors.Is(err, ErrUnsupportedFormat):
		RespondError(c, http.StatusBadRequest, "Format must be txt or ics")
	case errors.Is(err, ErrNoItinerary):
		RespondError(c, http.StatusNotFound, "No itinerary has been generated yet")
	default:
		logger.Error("unhandled service error", zap.Error(err), zap.String("trace_id", traceID(c)))
		RespondError(c, http.StatusInternalServerError, "Internal server error")
	}
}
