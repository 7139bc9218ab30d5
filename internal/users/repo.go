package users

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type UpsertUser struct {
	AuthUID     string
	Email       string
	DisplayName string
	AvatarURL   string
}

func (r *Repo) EnsureUser(ctx context.Context, u UpsertUser) (string, error) {
	if u.AuthUID == "" {
		return "", fmt.Errorf("auth_uid required")
	}

	const q = `
insert into users (auth_uid, email, display_name, avatar_url, updated_at)
values ($1, nullif($2,''), nullif($3,''), nullif($4,''), now())
on conflict (auth_uid) do update
set
  email = coalesce(excluded.email, users.email),
  display_name = coalesce(excluded.display_name, users.display_name),
  avatar_url = coalesce(excluded.avatar_url, users.avatar_url),
  updated_at = now()
returning id::text;
`
	var id string
	if err := r.db.QueryRow(ctx, q, u.AuthUID, u.Email, u.DisplayName, u.AvatarURL).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}
