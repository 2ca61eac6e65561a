package handlers

import (
	"errors"
	"net/http"

	"solarac_dashboard/internal/pipeline"
	"solarac_dashboard/internal/service"

	"github.com/gin-gonic/gin"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		if httpCode >= http.StatusInternalServerError {
			h.log.Errorw(logKey, fields...)
		} else {
			h.log.Warnw(logKey, fields...)
		}
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	var (
		retrieval *service.RetrievalError
		transport *service.CommentTransportError
		schema    *pipeline.SchemaError
		parse     *pipeline.ParseError
	)
	switch {
	case errors.Is(err, service.ErrNotLoaded):
		return http.StatusConflict
	case errors.Is(err, service.ErrUnknownTopic):
		return http.StatusNotFound
	case errors.Is(err, service.ErrEmptyComment):
		return http.StatusBadRequest
	case errors.As(err, &retrieval), errors.As(err, &transport):
		return http.StatusBadGateway
	case errors.As(err, &schema), errors.As(err, &parse):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes err with its mapped status. Internal failures hide the cause.
func (h *Handler) respondError(c *gin.Context, logKey string, err error, kv ...interface{}) {
	code := statusFor(err)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = "internal error"
	}
	h.logAndJSONError(c, code, msg, logKey, err, kv...)
}
