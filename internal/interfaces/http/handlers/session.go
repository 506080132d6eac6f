// internal/interfaces/http/handlers/session.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/your-org/mattress-storefront/internal/config"
)

// SessionCookie holds the anonymous shopper id
const SessionCookie = "session_id"

// getOrCreateSessionID returns the shopper's session id, issuing a new cookie
// on first visit. The cookie lives as long as the stored cart.
func getOrCreateSessionID(c *gin.Context, cfg *config.Config) string {
	sessionID, err := c.Cookie(SessionCookie)
	if err == nil {
		if _, parseErr := uuid.Parse(sessionID); parseErr == nil {
			return sessionID
		}
	}

	sessionID = uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(SessionCookie, sessionID, int(cfg.Cart.TTL.Seconds()), "/", "", cfg.Security.CookieSecure, true)
	return sessionID
}
