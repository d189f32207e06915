package mw

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAPIKey guards an endpoint with the shared booth ingestion key,
// presented in the X-API-Key header. An unconfigured key rejects every
// request rather than letting pings through unauthenticated.
func RequireAPIKey(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "API key is not configured"})
			return
		}

		presented := c.GetHeader("X-API-Key")
		if subtle.ConstantTimeCompare([]byte(presented), []byte(key)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid API key"})
			return
		}
		c.Next()
	}
}
