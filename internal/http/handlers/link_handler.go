package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yaricp/simple-short-links/internal/http/middleware"
	"github.com/yaricp/simple-short-links/internal/models"
	"github.com/yaricp/simple-short-links/internal/services"
	"github.com/yaricp/simple-short-links/internal/utils"
)

type LinkHandler struct {
	links *services.LinkService
}

type LinkCreateRequest struct {
	Text string `json:"text" binding:"required,url"`
}

func NewLinkHandler(links *services.LinkService) *LinkHandler {
	return &LinkHandler{links: links}
}

// Redirect resolves a short code and sends the client on to the long URL.
func (h *LinkHandler) Redirect(c *gin.Context) {
	link, err := h.links.Resolve(c.Request.Context(), c.Param("short_text"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.Redirect(http.StatusTemporaryRedirect, link.Text)
}

// List returns links visible to the caller: all of them for admins, only
// owned ones otherwise.
func (h *LinkHandler) List(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	skip, limit := utils.ParseSkipLimit(c, 100)

	links, err := h.links.List(c.Request.Context(), user, skip, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	if links == nil {
		links = []models.Link{}
	}
	c.JSON(http.StatusOK, links)
}

// Create shortens a URL, returning the existing link when the URL is already
// known.
func (h *LinkHandler) Create(c *gin.Context) {
	var req LinkCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, _ := middleware.CurrentUser(c)
	link, err := h.links.Create(c.Request.Context(), user, req.Text)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *LinkHandler) Get(c *gin.Context) {
	id, ok := linkID(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)
	link, err := h.links.Get(c.Request.Context(), user, id)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

// Update applies a partial change to short_text and/or expired.
func (h *LinkHandler) Update(c *gin.Context) {
	id, ok := linkID(c)
	if !ok {
		return
	}

	var upd services.LinkUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		utils.RespondValidationError(c, err.Error())
		return
	}

	user, _ := middleware.CurrentUser(c)
	link, err := h.links.Update(c.Request.Context(), user, id, upd)
	if err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, link)
}

func (h *LinkHandler) Delete(c *gin.Context) {
	id, ok := linkID(c)
	if !ok {
		return
	}

	user, _ := middleware.CurrentUser(c)
	if err := h.links.Delete(c.Request.Context(), user, id); err != nil {
		utils.RespondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": true})
}

func linkID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		utils.RespondValidationError(c, "id must be an integer")
		return 0, false
	}
	return uint(id), true
}
