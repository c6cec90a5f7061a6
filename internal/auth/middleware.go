package auth

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie carrying the opaque session ID.
const SessionCookieName = "session_id"

const contextKeyUser = "session_user"

// UserFromContext returns the session snapshot set by RequireSession or
// RequireAdmin. ok is false when no middleware ran on this route.
func UserFromContext(c *gin.Context) (SessionUser, bool) {
	v, ok := c.Get(contextKeyUser)
	if !ok {
		return SessionUser{}, false
	}
	u, ok := v.(SessionUser)
	return u, ok
}

// RequireSession returns a middleware that resolves the session cookie
// and puts the user snapshot into context. Missing or invalid sessions
// get a 401.
func RequireSession(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveSession(c, sessions)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authorization required"})
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

// RequireAdmin returns a middleware that passes only sessions with the
// admin flag set. Both anonymous and non-admin callers get 403.
func RequireAdmin(sessions *Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := resolveSession(c, sessions)
		if !ok || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "access denied"})
			return
		}
		c.Set(contextKeyUser, user)
		c.Next()
	}
}

func resolveSession(c *gin.Context, sessions *Store) (SessionUser, bool) {
	sessionID, err := c.Cookie(SessionCookieName)
	if err != nil || sessionID == "" {
		return SessionUser{}, false
	}
	user, ok, err := sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		// Fail closed on a session-store outage, but leave a trace so it
		// is distinguishable from an ordinary expiry.
		log.Printf("resolve session: %v", err)
		return SessionUser{}, false
	}
	if !ok {
		return SessionUser{}, false
	}
	return user, true
}
