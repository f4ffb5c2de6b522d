// Package ownership is the single gate between client-supplied resource ids
// and the store. Nothing reads or writes a project or file from a request id
// without resolving it here first.
package ownership

import (
	"context"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/files"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/projects"
)

type ProjectSource interface {
	Get(ctx context.Context, userID string, projectID int64) (*projects.Project, error)
}

type FileSource interface {
	Get(ctx context.Context, userID string, fileID int64) (*files.File, error)
}

type Guard struct {
	projects ProjectSource
	files    FileSource
}

func NewGuard(p ProjectSource, f FileSource) *Guard {
	return &Guard{projects: p, files: f}
}

// Project returns the project only if it exists and belongs to userID.
// Absent and not-owned collapse into the same ErrNotFound; a caller can never
// learn that an id exists under another owner.
func (g *Guard) Project(ctx context.Context, userID string, projectID int64) (*projects.Project, error) {
	return g.projects.Get(ctx, userID, projectID)
}

// File returns the file only if its owning project belongs to userID.
func (g *Guard) File(ctx context.Context, userID string, fileID int64) (*files.File, error) {
	return g.files.Get(ctx, userID, fileID)
}
