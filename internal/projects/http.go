package projects

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/auth"
)

// Store is what the handlers need from the repo.
type Store interface {
	Create(ctx context.Context, userID, name, description, language string) (*Project, error)
	List(ctx context.Context, userID string) ([]Project, error)
	Get(ctx context.Context, userID string, projectID int64) (*Project, error)
	Update(ctx context.Context, userID string, projectID int64, patch Patch) (*Project, error)
}

type Handler struct {
	store Store
}

func Register(rg *gin.RouterGroup, store Store) {
	h := &Handler{store: store}

	rg.POST("", h.create)
	rg.GET("", h.list)
	rg.GET("/:project_id", h.get)
	rg.PUT("/:project_id", h.update)
}

type createReq struct {
	Name        string `json:"project_name"`
	Description string `json:"description"`
	Language    string `json:"language"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.store.Create(c.Request.Context(), userID, req.Name, req.Description, req.Language)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project_name is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not create project"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	userID := auth.UserDBID(c)
	items, err := h.store.List(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not fetch projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

func (h *Handler) get(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.store.Get(c.Request.Context(), userID, projectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not fetch project"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

type updateReq struct {
	Name        *string `json:"project_name"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
}

func (h *Handler) update(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	p, err := h.store.Update(c.Request.Context(), userID, projectID, Patch{
		Name:        req.Name,
		Description: req.Description,
		Language:    req.Language,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		case errors.Is(err, ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "project_name is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not update project"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "project": p})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + name})
		return 0, false
	}
	return id, true
}
