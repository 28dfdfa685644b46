package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yaricp/simple-short-links/internal/http/middleware"
	"github.com/yaricp/simple-short-links/internal/utils"
)

type MeHandler struct{}

func NewMeHandler() *MeHandler {
	return &MeHandler{}
}

// GetMe returns the authenticated user's own profile.
func (h *MeHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		utils.RespondError(c, utils.NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", "missing user", nil))
		return
	}

	c.JSON(http.StatusOK, user)
}
