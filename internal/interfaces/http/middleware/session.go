// internal/interfaces/http/middleware/session.go
package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ogtriplek/tyre-storefront/internal/config"
	"github.com/ogtriplek/tyre-storefront/internal/pkg/session"
	"github.com/sirupsen/logrus"
)

// SessionIDKey is the gin context key holding the page session id
const SessionIDKey = "session_id"

// Session resolves the page session from the signed cookie, starting a new
// one when the cookie is missing or fails verification. The cookie is
// re-issued once half of its lifetime has passed.
func Session(cfg *config.Config, tokens *session.TokenManager, logger *logrus.Logger) gin.HandlerFunc {
	name := cfg.Session.CookieName
	ttl := tokens.TTL()

	return func(c *gin.Context) {
		var id string
		reissue := true

		if raw, err := c.Cookie(name); err == nil && raw != "" {
			claims, err := tokens.Parse(raw)
			if err != nil {
				logger.WithError(err).Debug("discarding session cookie")
			} else {
				id = claims.SessionID
				if claims.ExpiresAt != nil && time.Until(claims.ExpiresAt.Time) > ttl/2 {
					reissue = false
				}
			}
		}
		if id == "" {
			id = session.NewID()
		}

		if reissue {
			token, err := tokens.Issue(id)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
					"error": "Failed to start session",
				})
				return
			}
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(name, token, int(ttl.Seconds()), "/", "", cfg.IsProduction(), true)
		}

		c.Set(SessionIDKey, id)
		c.Next()
	}
}

// GetSessionID returns the page session id set by Session
func GetSessionID(c *gin.Context) (string, bool) {
	id := c.GetString(SessionIDKey)
	return id, id != ""
}
