// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file provides SecurityHeaders, which attaches browser hardening
// headers to every response. The public pages embed the SmartCaptcha widget,
// so the default Content-Security-Policy allows its script and frame origin
// and nothing else from third parties.
package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// DefaultCSP is the policy used for HTML pages when SecurityOptions.CSP is empty.
const DefaultCSP = "default-src 'self'; " +
	"script-src 'self' https://smartcaptcha.yandexcloud.net; " +
	"frame-src https://smartcaptcha.yandexcloud.net; " +
	"connect-src 'self' https://smartcaptcha.yandexcloud.net; " +
	"img-src 'self' data:; style-src 'self' 'unsafe-inline'; " +
	"object-src 'none'; base-uri 'self'; form-action 'self'; frame-ancestors 'none'"

// SecurityOptions configures SecurityHeaders.
type SecurityOptions struct {
	EnableHSTS   bool          // only when traffic is HTTPS end-to-end
	HSTSMaxAge   time.Duration // defaults to 180 days
	NoStore      bool          // Cache-Control: no-store, for the back-office API
	EnablePolicy bool          // Permissions-Policy and X-Permitted-Cross-Domain-Policies
	EnableCSP    bool          // emit Content-Security-Policy
	CSP          string        // overrides DefaultCSP
}

// SecurityHeaders returns a Gin middleware that adds:
//
//   - always: X-Content-Type-Options: nosniff, X-Frame-Options: DENY,
//     Referrer-Policy: same-origin
//   - EnablePolicy: Permissions-Policy, X-Permitted-Cross-Domain-Policies
//   - EnableCSP: Content-Security-Policy
//   - NoStore: Cache-Control: no-store, Pragma, Expires
//   - EnableHSTS on HTTPS requests: Strict-Transport-Security
//
// X-Request-ID, when already set, is exposed to browser clients.
func SecurityHeaders(opt SecurityOptions) gin.HandlerFunc {
	maxAge := int(opt.HSTSMaxAge.Seconds())
	if maxAge <= 0 {
		maxAge = int((180 * 24 * time.Hour).Seconds())
	}
	hsts := "max-age=" + strconv.Itoa(maxAge) + "; includeSubDomains; preload"
	csp := strings.TrimSpace(opt.CSP)
	if csp == "" {
		csp = DefaultCSP
	}

	return func(c *gin.Context) {
		h := c.Writer.Header()

		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")

		if opt.EnablePolicy {
			h.Set("Permissions-Policy", "geolocation=(), microphone=(), camera=(), payment=()")
			h.Set("X-Permitted-Cross-Domain-Policies", "none")
		}
		if opt.EnableCSP {
			h.Set("Content-Security-Policy", csp)
		}
		if opt.NoStore {
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			h.Set("Expires", "0")
		}
		if opt.EnableHSTS && isHTTPS(c.Request) {
			h.Set("Strict-Transport-Security", hsts)
		}

		if rid := h.Get(requestIDHeader); rid != "" {
			const hdr = "Access-Control-Expose-Headers"
			cur := h.Get(hdr)
			if cur == "" {
				h.Set(hdr, requestIDHeader)
			} else if !strings.Contains(cur, requestIDHeader) {
				h.Set(hdr, cur+", "+requestIDHeader)
			}
		}

		c.Next()
	}
}

// isHTTPS reports whether the request arrived over TLS directly or via a
// proxy that set X-Forwarded-Proto: https.
func isHTTPS(r *http.Request) bool {
	if r.TLS != nil {
		return true
	}
	return strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
