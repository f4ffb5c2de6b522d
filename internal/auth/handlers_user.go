package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/users"
)

// ProfileStore is the slice of the user repo the profile endpoints need.
type ProfileStore interface {
	Get(ctx context.Context, userID string) (*users.User, error)
	UpdateTheme(ctx context.Context, userID string, themeID int) error
}

type profileHandler struct {
	store ProfileStore
}

// RegisterUserRoutes mounts the profile endpoints. They run behind WithUser,
// so the DB id is always present in the gin context.
func RegisterUserRoutes(rg *gin.RouterGroup, store ProfileStore) {
	h := &profileHandler{store: store}
	rg.GET("/me", h.me)
	rg.PUT("/theme", h.updateTheme)
}

func (h *profileHandler) me(c *gin.Context) {
	u, err := h.store.Get(c.Request.Context(), UserDBID(c))
	if errors.Is(err, users.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "user": u})
}

type themeReq struct {
	Theme string `json:"theme"`
}

func (h *profileHandler) updateTheme(c *gin.Context) {
	var req themeReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Invalid request body"})
		return
	}

	var themeID int
	switch req.Theme {
	case "light":
		themeID = users.ThemeLight
	case "dark":
		themeID = users.ThemeDark
	default:
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "Unknown theme"})
		return
	}

	err := h.store.UpdateTheme(c.Request.Context(), UserDBID(c), themeID)
	if errors.Is(err, users.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "User not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "preferred_theme_id": themeID})
}
