// Package middleware contains shared Gin middleware used by the HTTP layer.
//
// This file guards the back-office API with HTTP Basic authentication backed
// by the admin user table.
package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

const ctxKeyAdminUser = "adminUser"

// Authenticator checks a username/password pair. Any error denies access.
type Authenticator func(ctx context.Context, username, password string) error

// AdminAuth returns a middleware that requires valid Basic credentials.
// On success the username is stored for AdminUserFrom; otherwise the request
// is aborted with 401 and a WWW-Authenticate challenge for realm.
func AdminAuth(realm string, authn Authenticator) gin.HandlerFunc {
	if realm == "" {
		realm = "admin"
	}
	challenge := `Basic realm="` + realm + `", charset="UTF-8"`

	return func(c *gin.Context) {
		user, pass, ok := c.Request.BasicAuth()
		if ok && authn != nil {
			if err := authn(c.Request.Context(), user, pass); err == nil {
				c.Set(ctxKeyAdminUser, user)
				c.Next()
				return
			}
			LoggerFrom(c).Warn().Str("username", user).Msg("admin authentication failed")
		}
		c.Header("WWW-Authenticate", challenge)
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
			"request_id": RequestIDFrom(c),
			"code":       "unauthorized",
			"message":    "authentication required",
		})
	}
}

// AdminUserFrom returns the authenticated administrator, or "".
func AdminUserFrom(c *gin.Context) string {
	v, _ := c.Get(ctxKeyAdminUser)
	return asString(v)
}
