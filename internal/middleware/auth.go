package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sfsergim/CivicReport/internal/models"
	"github.com/sfsergim/CivicReport/internal/observability"
	"go.uber.org/zap"
)

const (
	claimsKey = "claims"
	userIDKey = "user_id"
)

// TokenValidator validates a bearer token and returns its claims
type TokenValidator interface {
	Validate(token string) (*models.Claims, error)
}

// AuthMiddleware validates the bearer token and stores its claims in the context
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.CodeMissingToken})
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		token = strings.TrimSpace(token)
		if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.CodeInvalidToken})
			return
		}

		claims, err := validator.Validate(token)
		if err != nil {
			observability.Logger().Debug("rejected bearer token", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.CodeInvalidToken})
			return
		}

		c.Set(claimsKey, claims)
		c.Set(userIDKey, claims.UserID())
		c.Next()
	}
}

// RequireAdmin rejects callers whose token does not carry the admin claim.
// It must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := GetClaims(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": models.CodeMissingToken})
			return
		}
		if !claims.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": models.CodeAdminRequired})
			return
		}
		c.Next()
	}
}

// GetClaims returns the claims stored by AuthMiddleware
func GetClaims(c *gin.Context) (*models.Claims, bool) {
	value, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := value.(*models.Claims)
	return claims, ok && claims != nil
}

// GetUserID returns the authenticated user id, or "" when unauthenticated
func GetUserID(c *gin.Context) string {
	return c.GetString(userIDKey)
}
