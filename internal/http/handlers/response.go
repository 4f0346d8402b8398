// Package handlers provides the HTTP handlers of the landing site: HTML
// pages, the contact form endpoint, document downloads and the back-office
// JSON API.
//
// This file defines the response helpers shared by all handlers. JSON errors
// use the ErrorResponse envelope; browsers asking for HTML get a rendered
// error page instead (see failPage).
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "document not found"
//	}
package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/turret-landing/internal/domain"
	"github.com/tbourn/turret-landing/internal/http/middleware"
)

// ErrorResponse is the standard error envelope of the JSON endpoints.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"document not found"`
}

// fail aborts the request with a structured error. Server errors (>=500) are
// logged with the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}

	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// failInternal answers 500 with a fixed message. The cause is attached to
// the gin context and logged, never sent to the client.
func failInternal(c *gin.Context, code string, err error) {
	_ = c.Error(err)
	middleware.LoggerFrom(c).Error().Err(err).Str("code", code).Msg("internal error")
	c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msgInternal,
	})
}

// Fail is the exported variant of fail() for router-level fallbacks.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes a success JSON response.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// errorPage is the view model of error.html.
type errorPage struct {
	Settings *domain.SiteSettings
	Status   int
	Title    string
	Message  string
}

// failPage answers with the HTML error page when the client is a browser
// and falls back to the JSON envelope otherwise.
func failPage(c *gin.Context, status int, code, msg string) {
	if !wantsHTML(c) {
		fail(c, status, code, msg)
		return
	}
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().Int("status", status).Str("code", code).Msg("page error")
	}
	c.HTML(status, "error.html", errorPage{
		Status:  status,
		Title:   http.StatusText(status),
		Message: msg,
	})
	c.Abort()
}

// NotFound is the router fallback for unknown routes.
func NotFound(c *gin.Context) {
	failPage(c, http.StatusNotFound, ErrCodeNotFound, "Страница не найдена")
}

// wantsHTML reports whether the client is a browser navigating to a page
// (Accept mentions text/html) rather than a script.
func wantsHTML(c *gin.Context) bool {
	if c.Request == nil {
		return false
	}
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// wantsJSON reports whether the contact endpoint should answer in JSON: the
// page script marks its requests with X-Requested-With, API clients send
// Accept: application/json.
func wantsJSON(c *gin.Context) bool {
	if c.GetHeader("X-Requested-With") == "XMLHttpRequest" {
		return true
	}
	return strings.Contains(c.GetHeader("Accept"), "application/json")
}
