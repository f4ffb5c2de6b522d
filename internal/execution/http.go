package execution

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/auth"
)

// Runner is the gateway contract the handler depends on.
type Runner interface {
	Run(ctx context.Context, req RunRequest) (*Result, error)
}

type Handler struct {
	runner Runner
	quota  *Quota
}

func Register(rg *gin.RouterGroup, runner Runner, quota *Quota) {
	h := &Handler{runner: runner, quota: quota}

	rg.POST("/run", h.run)
}

type runReq struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Stdin    string `json:"stdin"`
}

func (h *Handler) run(c *gin.Context) {
	var req runReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	userID := auth.UserDBID(c)
	if err := h.quota.Check(c.Request.Context(), userID); err != nil {
		if errors.Is(err, ErrQuotaExceeded) {
			c.JSON(http.StatusTooManyRequests, gin.H{"ok": false, "error": "run quota exceeded, try again shortly"})
			return
		}
		// Quota store trouble is not the user's problem; let the run proceed.
		log.Printf("[warn] operation=run quota check failed: %v", err)
	}

	res, err := h.runner.Run(c.Request.Context(), RunRequest{
		LanguageTag: req.Language,
		SourceCode:  req.Code,
		Stdin:       req.Stdin,
	})
	if err != nil {
		switch {
		case errors.Is(err, ErrLanguageRequired):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		case errors.Is(err, ErrJudgeUnavailable):
			c.JSON(http.StatusBadGateway, gin.H{"ok": false, "error": "Execution failed"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}
