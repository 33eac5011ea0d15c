package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/loplicat/airport-api-service/internal/service/auth"
)

const claimsKey = "auth_claims"

// Authenticate validates the Bearer token and stores the identity on the
// request context. Requests without a valid token are rejected.
func Authenticate(authSvc auth.AuthUseCase) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "missing bearer token"}})
			return
		}

		claims, err := authSvc.ParseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "invalid token"}})
			return
		}

		c.Set(claimsKey, claims)
		c.Next()
	}
}

// RequireStaff gates admin-only endpoints. It must run after Authenticate.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := currentClaims(c)
		if claims == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "authentication required"}})
			return
		}
		if !claims.IsStaff {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": gin.H{"message": "insufficient privileges"}})
			return
		}
		c.Next()
	}
}

func currentClaims(c *gin.Context) *auth.Claims {
	value, ok := c.Get(claimsKey)
	if !ok {
		return nil
	}
	claims, ok := value.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}
