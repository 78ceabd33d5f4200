package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/marlondridley/FarME/internal/domain"
)

// userKey is the gin context key the resolved account is stored under.
const userKey = "currentUser"

// CORSMiddleware handles CORS for the web frontend
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")

		// Check if origin is allowed
		if isAllowedOrigin(origin, allowedOrigins) {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
			c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS, PUT, DELETE")
			c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")
			c.Writer.Header().Set("Access-Control-Max-Age", "3600")
		}

		// Handle preflight requests
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// isAllowedOrigin checks if the origin is in the allowed list
func isAllowedOrigin(origin string, allowedOrigins []string) bool {
	for _, allowed := range allowedOrigins {
		// Support wildcard matching for e.g. https://*.farme.app
		if strings.HasSuffix(allowed, "*") {
			prefix := strings.TrimSuffix(allowed, "*")
			if strings.HasPrefix(origin, prefix) {
				return true
			}
		} else if origin == allowed {
			return true
		}
	}
	return false
}

// LoggerMiddleware logs requests (simple version for now)
func LoggerMiddleware() gin.HandlerFunc {
	return gin.Logger()
}

// RecoveryMiddleware recovers from panics
func RecoveryMiddleware() gin.HandlerFunc {
	return gin.Recovery()
}

// OptionalAuth resolves the bearer token to an account when one is present.
// Requests without a token proceed anonymously.
func OptionalAuth(users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := resolveUser(c, users); err == nil {
			c.Set(userKey, user)
		}
		c.Next()
	}
}

// RequireAuth rejects requests that do not carry a valid bearer token.
func RequireAuth(users domain.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := resolveUser(c, users)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "a valid bearer token is required"})
			return
		}
		c.Set(userKey, user)
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose account does not hold the
// given role. Must run after RequireAuth.
func RequireRole(role domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := currentUser(c)
		if user == nil || user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "this operation requires the " + string(role) + " role"})
			return
		}
		c.Next()
	}
}

// resolveUser extracts the bearer token and looks up the account it belongs
// to. The role read here is current as of this request, not of token issue.
func resolveUser(c *gin.Context, users domain.UserRepository) (*domain.User, error) {
	header := c.GetHeader("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return nil, domain.ErrUnauthorized
	}
	user, err := users.GetByToken(c.Request.Context(), token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return user, nil
}

// currentUser returns the account resolved by the auth middleware, or nil
// for anonymous requests.
func currentUser(c *gin.Context) *domain.User {
	value, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	user, _ := value.(*domain.User)
	return user
}
