package middleware

import (
	"errors"
	"net/http"
	"strings"

	"hospital-management/internal/models"
	"hospital-management/internal/session"
	"hospital-management/pkg/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// SessionCookie carries the session token for browser clients
	SessionCookie = "hms_session"
	identityKey   = "identity"
	loginPath     = "/login"
)

// Gate authenticates requests against the session store
type Gate struct {
	sessions *session.Store
	log      *zap.Logger
}

func NewGate(sessions *session.Store, log *zap.Logger) *Gate {
	return &Gate{sessions: sessions, log: log}
}

// GetIdentity returns the identity set by RequireSession, or the zero Identity
func GetIdentity(c *gin.Context) session.Identity {
	if v, ok := c.Get(identityKey); ok {
		if identity, ok := v.(session.Identity); ok {
			return identity
		}
	}
	return session.Identity{}
}

// SetIdentity stores identity on the request context
func SetIdentity(c *gin.Context, identity session.Identity) {
	c.Set(identityKey, identity)
}

// extractToken reads the bearer token, falling back to the session cookie
func extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	if cookie, err := c.Cookie(SessionCookie); err == nil {
		return cookie
	}
	return ""
}

func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}

// deny stops the chain. Browsers are sent to the login page, API clients get a JSON error.
func deny(c *gin.Context, status int, message string) {
	if wantsHTML(c) {
		c.Redirect(http.StatusFound, loginPath)
		c.Abort()
		return
	}
	utils.AbortWithError(c, status, message)
}

// RequireSession validates the token and loads the live session into the context
func (g *Gate) RequireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			deny(c, http.StatusUnauthorized, "Authentication required")
			return
		}

		claims, err := utils.ValidateSessionToken(token)
		if err != nil {
			deny(c, http.StatusUnauthorized, "Invalid or expired token")
			return
		}

		identity, err := g.sessions.Get(c.Request.Context(), claims.ID)
		if err != nil {
			if !errors.Is(err, session.ErrSessionNotFound) {
				g.log.Error("failed to load session", zap.Error(err))
			}
			deny(c, http.StatusUnauthorized, "Session expired")
			return
		}

		if !identity.Role.IsValid() {
			if err := g.sessions.Destroy(c.Request.Context(), identity.SessionID); err != nil {
				g.log.Warn("failed to destroy session with unknown role", zap.Error(err))
			}
			deny(c, http.StatusUnauthorized, "Unrecognized account role")
			return
		}

		SetIdentity(c, identity)
		c.Next()
	}
}

// RequireRole allows the request only when the session holds one of roles.
// It must run after RequireSession.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if !identity.IsLoggedIn() {
			deny(c, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !identity.HasRole(roles...) {
			deny(c, http.StatusForbidden, "You don't have permission to access this resource")
			return
		}
		c.Next()
	}
}
