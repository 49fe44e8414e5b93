package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/RangiraDave/Test-copilot/internal/application"
	"github.com/RangiraDave/Test-copilot/pkg/helpers"
	"github.com/RangiraDave/Test-copilot/pkg/response"
)

// Auth validates the access-token cookie and ensures a live session exists for
// the token's session id. It sets userID, userName, and userEmail in the Gin
// context on success.
func Auth(sessions application.SessionStore, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tok, err := c.Cookie("access_token")
		if err != nil || tok == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(tok)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}
		sess, err := sessions.Get(c.Request.Context(), claims.UserID)
		if err != nil || sess == nil || sess.ID != claims.SessionID {
			response.Error(c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}
		c.Set("userID", sess.UserID)
		c.Set("userName", sess.Username)
		c.Set("userEmail", sess.Email)
		c.Next()
	}
}
