// internal/middleware/session.go
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/javajoker/vinyl-storefront/internal/config"
)

// Session identifies the visitor through a uuid cookie. The cart of a
// visitor lives under the storage key derived from this id.
func Session(cfg config.CartConfig) gin.HandlerFunc {
	name := cfg.CookieName
	if name == "" {
		name = "storefront_session"
	}

	return func(c *gin.Context) {
		sessionID, err := c.Cookie(name)
		if err != nil || !validSessionID(sessionID) {
			sessionID = uuid.NewString()
		}

		// refresh the expiry on every request
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(name, sessionID, cfg.CookieMaxAge, "/", "", cfg.CookieSecure, true)

		c.Set("session_id", sessionID)
		c.Next()
	}
}

func validSessionID(id string) bool {
	if id == "" {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}

// RequestID tags each request with an id, reusing X-Request-ID when the
// caller sends one.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader("X-Request-ID")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set("request_id", requestID)
		c.Header("X-Request-ID", requestID)
		c.Next()
	}
}
