package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CORS enables cross-origin requests from the landing page, which is served
// from a different origin than the API. The write surface is anonymous, so no
// credentials are allowed with the wildcard origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Vary", "Origin")
		c.Header("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, X-Requested-With")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
