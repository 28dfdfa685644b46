package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yaricp/simple-short-links/internal/http/middleware"
	"github.com/yaricp/simple-short-links/internal/repo"
	"github.com/yaricp/simple-short-links/internal/utils"
)

type UserHandler struct {
	users *repo.UserRepo
}

func NewUserHandler(users *repo.UserRepo) *UserHandler {
	return &UserHandler{users: users}
}

// Delete removes a user and, through the cascade, their links. Admin only.
func (h *UserHandler) Delete(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok || !current.IsAdmin {
		utils.RespondError(c, utils.NewAppError(http.StatusBadRequest, "FORBIDDEN", "The user doesn't have enough privileges", nil))
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "id must be an integer")
		return
	}

	deleted, err := h.users.Delete(c.Request.Context(), uint(id))
	if err != nil {
		utils.RespondError(c, utils.NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "could not delete user", nil))
		return
	}
	if !deleted {
		utils.RespondError(c, utils.NewAppError(http.StatusNotFound, "NOT_FOUND", "User not found", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}
