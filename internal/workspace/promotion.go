package workspace

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/files"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/languages"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/ownership"
	"github.com/CodeLab-25-26J-102/workspace-backend/internal/projects"
)

var (
	ErrTargetRequired   = errors.New("select a project or provide a new project name")
	ErrFileNameRequired = errors.New("file name is required")
)

// State names one step of a promotion. Promotions move
// Unattached -> ResolvingTarget -> Persisting -> Attached; any failure lands
// in Aborted and leaves the buffer untouched.
type State string

const (
	StateUnattached      State = "unattached"
	StateResolvingTarget State = "resolving_target"
	StatePersisting      State = "persisting"
	StateAttached        State = "attached"
	StateAborted         State = "aborted"
)

// PartialPromotionError reports a promotion that created its project but
// failed to create the file. It carries the project id so a retry can target
// the existing project instead of minting a duplicate.
type PartialPromotionError struct {
	ProjectID int64
	Err       error
}

func (e *PartialPromotionError) Error() string {
	return fmt.Sprintf("file creation failed after project %d was created: %v", e.ProjectID, e.Err)
}

func (e *PartialPromotionError) Unwrap() error {
	return e.Err
}

// PromotionRequest is the save-intent for an unattached buffer. Exactly one
// of ProjectID (selection) or NewProjectName (creation) picks the target.
type PromotionRequest struct {
	Content        string
	LanguageTag    string
	FileName       string
	ProjectID      int64
	NewProjectName string
}

// PromotionResult is the new identity the caller must rebind its buffer to.
type PromotionResult struct {
	ProjectID int64 `json:"project_id"`
	FileID    int64 `json:"file_id"`
}

type ProjectCreator interface {
	Create(ctx context.Context, userID, name, description, language string) (*projects.Project, error)
}

type FileCreator interface {
	Create(ctx context.Context, projectID int64, name string, languageID int, content string) (*files.File, error)
}

// Workflow turns a scratchpad buffer into a durable file. The two writes are
// sequential and not wrapped in a transaction; the partial-failure path is
// the recovery mechanism, not a rollback.
type Workflow struct {
	guard    *ownership.Guard
	projects ProjectCreator
	files    FileCreator
}

func NewWorkflow(guard *ownership.Guard, projects ProjectCreator, files FileCreator) *Workflow {
	return &Workflow{guard: guard, projects: projects, files: files}
}

// Promote resolves or creates the target project, creates the file under it
// and returns the pair the buffer must attach to.
func (w *Workflow) Promote(ctx context.Context, userID string, req PromotionRequest) (*PromotionResult, error) {
	if strings.TrimSpace(req.FileName) == "" {
		return nil, ErrFileNameRequired
	}
	newName := strings.TrimSpace(req.NewProjectName)
	if req.ProjectID == 0 && newName == "" {
		return nil, ErrTargetRequired
	}

	var projectID int64
	projectCreated := false
	if req.ProjectID != 0 {
		p, err := w.guard.Project(ctx, userID, req.ProjectID)
		if err != nil {
			return nil, abort(StateResolvingTarget, err)
		}
		projectID = p.ID
	} else {
		// Two concurrent saves with the same new name legitimately create two
		// distinct projects; names carry no uniqueness constraint.
		p, err := w.projects.Create(ctx, userID, newName, "", req.LanguageTag)
		if err != nil {
			return nil, abort(StateResolvingTarget, err)
		}
		projectID = p.ID
		projectCreated = true
	}

	f, err := w.files.Create(ctx, projectID, req.FileName, languages.StoreID(req.LanguageTag), req.Content)
	if err != nil {
		if projectCreated {
			return nil, abort(StatePersisting, &PartialPromotionError{ProjectID: projectID, Err: err})
		}
		return nil, abort(StatePersisting, err)
	}

	return &PromotionResult{ProjectID: projectID, FileID: f.ID}, nil
}

// abort records where the workflow died. The buffer lives on the client and
// stays unattached and unmodified; there is nothing to roll back here.
func abort(in State, err error) error {
	log.Printf("[warn] operation=promotion state=%s aborted: %v", in, err)
	return err
}
