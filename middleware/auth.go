// middleware/auth.go
package middleware

import (
	"net/http"
	"strings"

	"glowbook/database/gateway"
	"glowbook/utils"

	"github.com/gin-gonic/gin"
)

const sessionContextKey = "session"

// SessionAuthMiddleware validates the bearer access token and resolves
// the session it belongs to. The session is attached to both the gin
// context and the request context so services can consume it through a
// gateway.SessionProvider. Tokens and sessions are issued elsewhere;
// this middleware only consumes them.
func SessionAuthMiddleware(store *gateway.RedisSessionStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		// Validate the token signature and expiration.
		token, err := utils.ValidateToken(tokenString)
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		sess, err := store.GetSessionByTokenHash(c.Request.Context(), utils.HashToken(tokenString))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Session lookup failed"})
			return
		}
		if sess == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session expired or revoked"})
			return
		}
		// Cross-check the token subject against the stored session.
		if sub, ok := utils.TokenSubject(token); !ok || sub != sess.UserID {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token mismatch"})
			return
		}

		sess.AccessToken = tokenString
		c.Set(sessionContextKey, sess)
		c.Request = c.Request.WithContext(gateway.ContextWithSession(c.Request.Context(), sess))
		c.Next()
	}
}

// SessionFrom returns the session the auth middleware attached, or nil.
func SessionFrom(c *gin.Context) *gateway.Session {
	v, ok := c.Get(sessionContextKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*gateway.Session)
	return sess
}
