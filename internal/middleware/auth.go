package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"sample-catalog-api/internal/auth"
)

// Context keys set by Authentication.
const (
	UserUUIDKey = "user_uuid"
	UsernameKey = "username"
	EmailKey    = "email"
	ClaimsKey   = "claims"
)

// Authentication verifies the bearer token on every request and stores the
// caller identity in the request context. Unverifiable tokens are rejected.
func Authentication(verifier auth.TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header is required",
			})
			c.Abort()
			return
		}

		token := auth.ExtractBearerToken(authHeader)
		claims, err := verifier.Verify(c.Request.Context(), token)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"error": err.Error(),
				"path":  c.Request.URL.Path,
			}).Warn("Token validation failed")

			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(UserUUIDKey, claims.Subject)
		c.Set(UsernameKey, claims.Username)
		c.Set(EmailKey, claims.Email)
		c.Set(ClaimsKey, claims)

		logrus.WithFields(logrus.Fields{
			"user_uuid": claims.Subject,
			"username":  claims.Username,
			"path":      c.Request.URL.Path,
		}).Debug("User authenticated successfully")

		c.Next()
	}
}

// GetUserUUID returns the verified subject of the request token. The empty
// string means the request was not authenticated.
func GetUserUUID(c *gin.Context) string {
	return c.GetString(UserUUIDKey)
}
