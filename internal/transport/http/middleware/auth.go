package middleware

import (
	"net/http"

	"github.com/asanbekov/account-api/internal/token"
	"github.com/asanbekov/account-api/internal/transport/http/handler"
	"github.com/gin-gonic/gin"
)

const msgNotAuthorized = "Not Authorized Login Again"

// Auth validates the session cookie and sets "userID" in the gin context.
// A missing or invalid token answers HTTP 200 with a failure envelope, same
// shape as every other response, so the client never branches on status.
func Auth(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, err := c.Cookie(handler.SessionCookieName)
		if err != nil || raw == "" {
			abortNotAuthorized(c)
			return
		}

		userID, err := tokens.Verify(raw)
		if err != nil {
			abortNotAuthorized(c)
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

func abortNotAuthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusOK, gin.H{
		"success": false,
		"message": msgNotAuthorized,
	})
}
