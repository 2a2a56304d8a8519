package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIKeyAuth rejects any request whose headerName value does not match
// expectedKey. This plays the role the teacher's RateLimiter middleware
// plays against the inbound submission endpoint (reject with a JSON body
// before the handler runs), but compares a static shared secret instead
// of consulting a Redis sliding window — spec.md's facade authenticates
// the orchestrator with one fixed API key, not a per-IP quota.
func APIKeyAuth(headerName, expectedKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if expectedKey == "" {
			c.Next()
			return
		}
		got := c.GetHeader(headerName)
		if subtle.ConstantTimeCompare([]byte(got), []byte(expectedKey)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or missing API key"})
			return
		}
		c.Next()
	}
}
