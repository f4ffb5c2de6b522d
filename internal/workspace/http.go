package workspace

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/auth"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/files"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/languages"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/projects"
)

// FileUpdater is the attached-save path: update-in-place on a known file.
type FileUpdater interface {
	Update(ctx context.Context, userID string, fileID int64, patch files.Patch) (*files.File, error)
}

// Promoter is the unattached-save path.
type Promoter interface {
	Promote(ctx context.Context, userID string, req PromotionRequest) (*PromotionResult, error)
}

type Handler struct {
	files    FileUpdater
	workflow Promoter
}

func Register(rg *gin.RouterGroup, fileStore FileUpdater, workflow Promoter) {
	h := &Handler{files: fileStore, workflow: workflow}

	rg.POST("/save", h.save)
}

type saveReq struct {
	FileID         *int64 `json:"file_id"`
	Content        string `json:"content"`
	Language       string `json:"language"`
	FileName       string `json:"file_name"`
	ProjectID      *int64 `json:"project_id"`
	NewProjectName string `json:"new_project_name"`
}

// save dispatches on buffer identity: a file_id means update-in-place, no
// file_id means the buffer is a scratchpad and goes through promotion.
func (h *Handler) save(c *gin.Context) {
	var req saveReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)

	if req.FileID != nil {
		h.saveAttached(c, userID, *req.FileID, req)
		return
	}
	h.savePromoted(c, userID, req)
}

func (h *Handler) saveAttached(c *gin.Context, userID string, fileID int64, req saveReq) {
	patch := files.Patch{Content: &req.Content}
	if strings.TrimSpace(req.Language) != "" {
		languageID := languages.StoreID(req.Language)
		patch.LanguageID = &languageID
	}
	f, err := h.files.Update(c.Request.Context(), userID, fileID, patch)
	if err != nil {
		if errors.Is(err, files.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "file not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not save file"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true, "file": f})
}

func (h *Handler) savePromoted(c *gin.Context, userID string, req saveReq) {
	preq := PromotionRequest{
		Content:        req.Content,
		LanguageTag:    req.Language,
		FileName:       req.FileName,
		NewProjectName: req.NewProjectName,
	}
	if req.ProjectID != nil {
		preq.ProjectID = *req.ProjectID
	}

	res, err := h.workflow.Promote(c.Request.Context(), userID, preq)
	if err != nil {
		var partial *PartialPromotionError
		switch {
		case errors.As(err, &partial):
			// The project exists now; hand its id back so the retry creates
			// only the file.
			c.JSON(http.StatusConflict, gin.H{
				"ok":         false,
				"error":      "project was created but the file could not be saved; retry with project_id",
				"project_id": partial.ProjectID,
			})
		case errors.Is(err, ErrFileNameRequired),
			errors.Is(err, ErrTargetRequired),
			errors.Is(err, projects.ErrNameRequired),
			errors.Is(err, files.ErrNameRequired):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, projects.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "Could not save file"})
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project_id": res.ProjectID, "file_id": res.FileID})
}
