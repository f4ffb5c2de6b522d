package files

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound     = errors.New("file not found")
	ErrNameRequired = errors.New("file name is required")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type File struct {
	ID         int64     `json:"file_id"`
	ProjectID  int64     `json:"project_id"`
	Name       string    `json:"file_name"`
	LanguageID int       `json:"language_id"`
	Content    string    `json:"content"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Patch carries a partial update; nil fields keep their stored value.
type Patch struct {
	Name       *string
	LanguageID *int
	Content    *string
}

// Create inserts a file under projectID. Ownership of the project must
// already have been established by the caller.
func (r *Repo) Create(ctx context.Context, projectID int64, name string, languageID int, content string) (*File, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	const q = `
insert into files (project_id, file_name, language_id, content)
values ($1, $2, $3, $4)
returning file_id, project_id, file_name, language_id, content, created_at, updated_at;
`
	var f File
	err := r.db.QueryRow(ctx, q, projectID, name, languageID, content).
		Scan(&f.ID, &f.ProjectID, &f.Name, &f.LanguageID, &f.Content, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}
	return &f, nil
}

// Get resolves ownership through the file's project: File -> Project -> User.
func (r *Repo) Get(ctx context.Context, userID string, fileID int64) (*File, error) {
	const q = `
select f.file_id, f.project_id, f.file_name, f.language_id, f.content, f.created_at, f.updated_at
from files f
join projects p on p.project_id = f.project_id
where f.file_id = $2 and p.user_id = $1::uuid;
`
	var f File
	err := r.db.QueryRow(ctx, q, userID, fileID).
		Scan(&f.ID, &f.ProjectID, &f.Name, &f.LanguageID, &f.Content, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}
	return &f, nil
}

func (r *Repo) Update(ctx context.Context, userID string, fileID int64, patch Patch) (*File, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		patch.Name = &trimmed
	}

	const q = `
update files f
set file_name   = coalesce($3, f.file_name),
    language_id = coalesce($4, f.language_id),
    content     = coalesce($5, f.content),
    updated_at  = now()
from projects p
where p.project_id = f.project_id and f.file_id = $2 and p.user_id = $1::uuid
returning f.file_id, f.project_id, f.file_name, f.language_id, f.content, f.created_at, f.updated_at;
`
	var f File
	err := r.db.QueryRow(ctx, q, userID, fileID, patch.Name, patch.LanguageID, patch.Content).
		Scan(&f.ID, &f.ProjectID, &f.Name, &f.LanguageID, &f.Content, &f.CreatedAt, &f.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update file: %w", err)
	}
	return &f, nil
}
