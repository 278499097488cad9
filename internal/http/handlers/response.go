// Package handlers provides the HTTP handler implementations for the
// helpdesk API and its server-rendered pages.
//
// This file defines the standard response utilities used across the JSON
// endpoints: a structured error envelope, consistent serialization, and
// helpers for common patterns. The goal is uniform responses for both
// success and failure, making the API predictable and machine-friendly.
//
// Conventions:
//   - All JSON error responses return an ErrorResponse with a stable `code`.
//   - fail() centralizes error logging and formatting; 5xx responses are
//     logged with request context for observability.
//   - ok() keeps success responses uniform across handlers.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "Ticket with ID 999 not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/supportgen/go-helpdesk-backend/internal/http/middleware"
)

// ErrorResponse is the standard error envelope returned by all JSON endpoints.
//
// Fields:
//   - RequestID: optional correlation ID, echoed from X-Request-ID, used to
//     correlate server logs with client-side errors.
//   - Code: a stable, machine-readable string (see errors.go constants).
//   - Message: a human-readable description, safe for display to users.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"Ticket with ID 999 not found"`
}

// MessageResponse is the success envelope for write operations that return a
// confirmation rather than a resource body.
type MessageResponse struct {
	Message string `json:"message" example:"ticket deleted"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorResponse, writes it as JSON with the given HTTP
// status, and calls AbortWithStatusJSON to stop further processing. Server
// errors (>=500) are logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response with the given status and body.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}
