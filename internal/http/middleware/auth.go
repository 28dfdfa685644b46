package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yaricp/simple-short-links/internal/models"
	"github.com/yaricp/simple-short-links/internal/services"
	"github.com/yaricp/simple-short-links/internal/utils"
)

const userKey = "current_user"

// Auth validates the bearer token and loads the subject it names into the
// request context. Requests without a token, with a bad token, or from an
// inactive user never reach the handler.
func Auth(auth *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.Header("WWW-Authenticate", "Bearer")
			utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing token", nil))
			c.Abort()
			return
		}

		token := strings.TrimPrefix(header, "Bearer ")
		user, err := auth.CurrentUser(c.Request.Context(), token)
		if err != nil {
			utils.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(userKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated user placed in the context by Auth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	val, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := val.(*models.User)
	return user, ok
}
