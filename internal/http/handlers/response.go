// Package handlers provides HTTP handler implementations for the public API.
//
// This file holds the response helpers every endpoint goes through. Success
// bodies are endpoint-specific, but failures always use the same envelope so
// clients can branch on a stable code:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "no annotation for this work order"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/prasetyow/wo-ops-backend/internal/http/middleware"
)

// ErrorResponse is the error envelope returned by all endpoints. Code is one
// of the constants in errors.go; Message is safe to show to users. RequestID
// correlates the response with server logs.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"resource not found"`
}

// requestID returns the correlation id for the current request, preferring
// the context value stored by the RequestID middleware and falling back to
// the response header for routes mounted outside the full chain.
func requestID(c *gin.Context) string {
	if rid := c.GetString("requestID"); rid != "" {
		return rid
	}
	return c.Writer.Header().Get("X-Request-ID")
}

// fail aborts the request with the standard error envelope. Server-side
// failures (>=500) are also logged through the request-scoped logger so the
// envelope and the log line share one request id.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: requestID(c),
		Code:      code,
		Message:   msg,
	})
}

// Fail is the exported variant of fail, for callers outside this package
// (router NoRoute/NoMethod handlers).
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent answers 204 for operations with nothing to return.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
