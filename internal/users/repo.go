package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("user not found")

// Theme ids match the client's preferred_theme_id values.
const (
	ThemeLight = 1
	ThemeDark  = 2
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type User struct {
	ID               string    `json:"user_id"`
	ExternalUID      string    `json:"external_uid"`
	Email            *string   `json:"email"`
	DisplayName      *string   `json:"display_name"`
	PreferredThemeID int       `json:"preferred_theme_id"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

type UpsertUser struct {
	ExternalUID string
	Email       string
	DisplayName string
}

// EnsureUser upserts on the external uid and returns the row id. Fields
// already stored win over empty header values.
func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.ExternalUID == "" {
		return "", fmt.Errorf("external_uid required")
	}

	const q = `
insert into users (external_uid, email, display_name, updated_at)
values ($1, nullif($2,''), nullif($3,''), now())
on conflict (external_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.ExternalUID, u.Email, u.DisplayName).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func (r *Repo) Get(ctx context.Context, userID string) (*User, error) {
	const q = `
select id::text, external_uid, email, display_name, preferred_theme_id, created_at, updated_at
from users
where id = $1::uuid;
`
	var u User
	err := r.db.QueryRow(ctx, q, userID).
		Scan(&u.ID, &u.ExternalUID, &u.Email, &u.DisplayName, &u.PreferredThemeID, &u.CreatedAt, &u.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

func (r *Repo) UpdateTheme(ctx context.Context, userID string, themeID int) error {
	const q = `
update users
set preferred_theme_id = $2, updated_at = now()
where id = $1::uuid;
`
	ct, err := r.db.Exec(ctx, q, userID, themeID)
	if err != nil {
		return fmt.Errorf("update theme: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
