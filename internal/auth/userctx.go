package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/users"
)

const (
	CtxExternalUID = "external_uid"
	CtxUserDBID    = "user_db_id"
)

// UserEnsurer upserts the user row for the identity on the request.
type UserEnsurer interface {
	EnsureUser(ctx context.Context, u users.UpsertUser) (string, error)
}

// WithUser resolves the request identity from headers set by the session
// gateway in front of this service and stashes the user's DB id in the gin
// context. Every owner-scoped query downstream keys on that id.
func WithUser(userRepo UserEnsurer) gin.HandlerFunc {
	return func(c *gin.Context) {
		uid := strings.TrimSpace(c.GetHeader("X-User-Id"))
		if uid == "" {
			uid = "demo-user"
		}

		dbID, err := userRepo.EnsureUser(c.Request.Context(), users.UpsertUser{
			ExternalUID: uid,
			Email:       c.GetHeader("X-User-Email"),
			DisplayName: c.GetHeader("X-User-Name"),
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": "ensure user: " + err.Error()})
			c.Abort()
			return
		}

		c.Set(CtxExternalUID, uid)
		c.Set(CtxUserDBID, dbID)
		c.Next()
	}
}

// UserDBID returns the DB id stashed by WithUser, or "" when absent.
func UserDBID(c *gin.Context) string {
	v := c.GetString(CtxUserDBID)
	if strings.TrimSpace(v) == "" {
		return ""
	}
	return v
}
