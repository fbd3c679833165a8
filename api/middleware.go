package api

import (
	"net/http"
	"strings"

	"chat-relay/services"

	"github.com/gin-gonic/gin"
)

// identityKey is the gin context key carrying the authenticated username.
const identityKey = "username"

// BearerAuth validates the Authorization header on protected routes.
// Every failure (missing, malformed, bad signature, expired) collapses
// into the same 401 so callers cannot probe why a token was rejected.
func BearerAuth(authService services.IAuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == token {
			token = ""
		}

		username, err := authService.Verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		c.Set(identityKey, username)
		c.Next()
	}
}

// CORS restricts browser access to the configured frontend origin, with
// the GET/POST surface the relay exposes.
func CORS(allowedOrigin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin == allowedOrigin {
			c.Header("Access-Control-Allow-Origin", allowedOrigin)
			c.Header("Access-Control-Allow-Methods", "GET, POST")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type")
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
