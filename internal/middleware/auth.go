package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/project-tracker-api/internal/apperrors"
	"github.com/yukikurage/project-tracker-api/internal/constants"
	"github.com/yukikurage/project-tracker-api/internal/response"
	"github.com/yukikurage/project-tracker-api/internal/token"
)

// RequireAuth extracts the identity token from the configured source, verifies
// it, and stores the authenticated user ID in the request context. It must
// run before any handler that needs an identity; handlers never see requests
// whose token is missing, malformed, or expired.
func RequireAuth(tokens *token.Service, source string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := extractToken(c, source)
		if raw == "" {
			response.AbortWithError(c, apperrors.Unauthenticated("missing token"))
			return
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			response.AbortWithError(c, apperrors.Unauthenticated("invalid or expired token"))
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// extractToken reads the raw token from the single active carrier.
func extractToken(c *gin.Context, source string) string {
	switch source {
	case constants.AuthSourceHeader:
		header := c.GetHeader("Authorization")
		const prefix = "Bearer "
		if !strings.HasPrefix(header, prefix) {
			return ""
		}
		return strings.TrimSpace(strings.TrimPrefix(header, prefix))
	default:
		raw, err := c.Cookie(constants.AuthCookieName)
		if err != nil {
			return ""
		}
		return raw
	}
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (string, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return "", false
	}

	id, ok := userID.(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}
