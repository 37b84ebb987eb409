package middleware

import (
	"context"                     // Context for session lookups
	"earning_admin/internal/auth" // Admin session checks
	"errors"                      // Matching auth errors
	"net/http"                    // HTTP status codes

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SessionVerifier confirms that a session marker is still live
type SessionVerifier interface {
	VerifySession(ctx context.Context, sessionID string) error
}

// AdminOnlyMiddleware checks the admin session marker on each request
func AdminOnlyMiddleware(sessions SessionVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")   // Set by JWTAuthMiddleware
		sessionID := c.GetString("sessionID") // Set by JWTAuthMiddleware
		// Check if the token belongs to the admin account
		if username != auth.AdminUsername || sessionID == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		if err := sessions.VerifySession(c.Request.Context(), sessionID); err != nil {
			if errors.Is(err, auth.ErrSessionExpired) {
				// Logged out or expired: the token is no longer usable
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired, please log in again"})
				return
			}
			logrus.WithField("error", err.Error()).Error("Session lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify session"})
			return
		}
		// If admin, proceed to the next handler
		c.Next()
	}
}
