package projects

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/CodeLab-25-26J-102/workspace-backend/internal/languages"
)

var (
	ErrNotFound     = errors.New("project not found")
	ErrNameRequired = errors.New("project name is required")
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Project struct {
	ID          int64     `json:"project_id"`
	Name        string    `json:"project_name"`
	Description *string   `json:"description"`
	Language    string    `json:"language"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Patch carries a partial update. Nil fields keep their stored value; there
// is no way to clear a field through a patch.
type Patch struct {
	Name        *string
	Description *string
	Language    *string
}

func (r *Repo) Create(ctx context.Context, userID, name, description, language string) (*Project, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}
	if !languages.Known(language) {
		language = languages.DefaultTag
	}

	const q = `
insert into projects (user_id, project_name, description, language)
values ($1::uuid, $2, nullif($3,''), $4)
returning project_id, project_name, description, language, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userID, name, description, language).
		Scan(&p.ID, &p.Name, &p.Description, &p.Language, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}
	return &p, nil
}

func (r *Repo) List(ctx context.Context, userID string) ([]Project, error) {
	const q = `
select project_id, project_name, description, language, created_at, updated_at
from projects
where user_id = $1::uuid
order by updated_at desc;
`
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Language, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// Get is owner-scoped: a project that exists but belongs to someone else is
// indistinguishable from one that does not exist.
func (r *Repo) Get(ctx context.Context, userID string, projectID int64) (*Project, error) {
	const q = `
select project_id, project_name, description, language, created_at, updated_at
from projects
where project_id = $2 and user_id = $1::uuid;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userID, projectID).
		Scan(&p.ID, &p.Name, &p.Description, &p.Language, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}
	return &p, nil
}

func (r *Repo) Update(ctx context.Context, userID string, projectID int64, patch Patch) (*Project, error) {
	if patch.Name != nil {
		trimmed := strings.TrimSpace(*patch.Name)
		if trimmed == "" {
			return nil, ErrNameRequired
		}
		patch.Name = &trimmed
	}
	if patch.Language != nil && !languages.Known(*patch.Language) {
		def := languages.DefaultTag
		patch.Language = &def
	}

	const q = `
update projects
set project_name = coalesce($3, project_name),
    description  = coalesce($4, description),
    language     = coalesce($5, language),
    updated_at   = now()
where project_id = $2 and user_id = $1::uuid
returning project_id, project_name, description, language, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userID, projectID, patch.Name, patch.Description, patch.Language).
		Scan(&p.ID, &p.Name, &p.Description, &p.Language, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update project: %w", err)
	}
	return &p, nil
}
