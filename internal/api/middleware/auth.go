package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/martijn/jobtrack/internal/api/dto"
	"github.com/martijn/jobtrack/internal/core/service"
)

const (
	AuthHeaderKey     = "Authorization"
	SessionContextKey = "session"
)

// AuthMiddleware rejects requests without a valid bearer session token.
func AuthMiddleware(sessions *service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthHeaderKey)
		if authHeader == "" {
			abortUnauthorized(c, "Missing authorization header")
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || scheme != "Bearer" || token == "" {
			abortUnauthorized(c, "Invalid authorization header format. Expected 'Bearer <token>'")
			return
		}

		claims, err := sessions.Validate(token)
		if err != nil {
			abortUnauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(SessionContextKey, claims)
		c.Next()
	}
}

// GetSessionClaims retrieves the session claims stored by AuthMiddleware.
func GetSessionClaims(c *gin.Context) (*service.SessionClaims, bool) {
	claims, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, false
	}

	sessionClaims, ok := claims.(*service.SessionClaims)
	return sessionClaims, ok
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{
		Error:   "Unauthorized",
		Message: message,
		Code:    http.StatusUnauthorized,
	})
}
