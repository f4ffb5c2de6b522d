package files

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/auth"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/languages"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/projects"
)

// Store is what the handlers need from the repo.
type Store interface {
	Create(ctx context.Context, projectID int64, name string, languageID int, content string) (*File, error)
	Get(ctx context.Context, userID string, fileID int64) (*File, error)
	Update(ctx context.Context, userID string, fileID int64, patch Patch) (*File, error)
}

// ProjectAuthorizer establishes project ownership before a file is created
// under it. Satisfied by the ownership guard.
type ProjectAuthorizer interface {
	Project(ctx context.Context, userID string, projectID int64) (*projects.Project, error)
}

type Handler struct {
	store Store
	guard ProjectAuthorizer
}

// Register wires GET/PUT /files/:file_id.
func Register(rg *gin.RouterGroup, store Store, guard ProjectAuthorizer) *Handler {
	h := &Handler{store: store, guard: guard}

	rg.GET("/:file_id", h.get)
	rg.PUT("/:file_id", h.update)
	return h
}

// RegisterProjectSubroutes wires POST /projects/:project_id/files.
func (h *Handler) RegisterProjectSubroutes(rg *gin.RouterGroup) {
	rg.POST("/:project_id/files", h.create)
}

type createReq struct {
	FileName   string `json:"file_name"`
	LanguageID *int   `json:"language_id"`
	Content    string `json:"content"`
}

func (h *Handler) create(c *gin.Context) {
	projectID, ok := pathID(c, "project_id")
	if !ok {
		return
	}

	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	if _, err := h.guard.Project(c.Request.Context(), userID, projectID); err != nil {
		if errors.Is(err, projects.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not create file"})
		return
	}

	languageID := languages.StoreID(languages.DefaultTag)
	if req.LanguageID != nil {
		// Legacy ids outside the registry snap back to the default tag's id.
		languageID = languages.StoreID(languages.TagForStoreID(*req.LanguageID))
	}

	f, err := h.store.Create(c.Request.Context(), projectID, req.FileName, languageID, req.Content)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file_name is required"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not create file"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "file": f})
}

func (h *Handler) get(c *gin.Context) {
	fileID, ok := pathID(c, "file_id")
	if !ok {
		return
	}

	userID := auth.UserDBID(c)
	f, err := h.store.Get(c.Request.Context(), userID, fileID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not fetch file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "file": f})
}

type updateReq struct {
	FileName   *string `json:"file_name"`
	LanguageID *int    `json:"language_id"`
	Content    *string `json:"content"`
}

func (h *Handler) update(c *gin.Context) {
	fileID, ok := pathID(c, "file_id")
	if !ok {
		return
	}

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	f, err := h.store.Update(c.Request.Context(), userID, fileID, Patch{
		Name:       req.FileName,
		LanguageID: req.LanguageID,
		Content:    req.Content,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "file not found"})
		case errors.Is(err, ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "file_name is required"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not update file"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "file": f})
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid " + name})
		return 0, false
	}
	return id, true
}
