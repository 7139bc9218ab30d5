package pages

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/oreltrt123/displan-sub003/internal/projects"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSlugTaken = errors.New("slug already used in this project")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Page struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	IsFolder  bool      `json:"is_folder"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Repo) Create(ctx context.Context, userDBID, projectID, name string, isFolder bool) (*Page, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	slug := projects.DeriveSubdomain(name)

	const q = `
insert into pages (project_id, name, slug, is_folder)
select p.id, $3, $4, $5
from projects p
where p.id = $2::uuid and p.user_id = $1::uuid and p.deleted_at is null
returning id::text, project_id::text, name, slug, is_folder, created_at, updated_at;
`
	var pg Page
	err := r.db.QueryRow(ctx, q, userDBID, projectID, name, slug, isFolder).
		Scan(&pg.ID, &pg.ProjectID, &pg.Name, &pg.Slug, &pg.IsFolder, &pg.CreatedAt, &pg.UpdatedAt)
	if err != nil {
		// unique violation on (project_id, slug)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSlugTaken
		}
		return nil, err
	}
	return &pg, nil
}

func (r *Repo) ListByProject(ctx context.Context, userDBID, projectID string) ([]Page, error) {
	const q = `
select pg.id::text, pg.project_id::text, pg.name, pg.slug, pg.is_folder, pg.created_at, pg.updated_at
from pages pg
join projects p on p.id = pg.project_id
where p.user_id = $1::uuid and pg.project_id = $2::uuid and p.deleted_at is null
order by pg.created_at asc;
`
	rows, err := r.db.Query(ctx, q, userDBID, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Page, 0, 8)
	for rows.Next() {
		var pg Page
		if err := rows.Scan(&pg.ID, &pg.ProjectID, &pg.Name, &pg.Slug, &pg.IsFolder, &pg.CreatedAt, &pg.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, pg)
	}
	return out, rows.Err()
}

func (r *Repo) Rename(ctx context.Context, userDBID, projectID, pageID, newName string) (*Page, error) {
	const q = `
update pages pg
set name = $4, updated_at = now()
from projects p
where p.id = pg.project_id
  and p.user_id = $1::uuid and pg.project_id = $2::uuid and pg.id = $3::uuid
  and p.deleted_at is null
returning pg.id::text, pg.project_id::text, pg.name, pg.slug, pg.is_folder, pg.created_at, pg.updated_at;
`
	var pg Page
	err := r.db.QueryRow(ctx, q, userDBID, projectID, pageID, newName).
		Scan(&pg.ID, &pg.ProjectID, &pg.Name, &pg.Slug, &pg.IsFolder, &pg.CreatedAt, &pg.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &pg, nil
}

func (r *Repo) Delete(ctx context.Context, userDBID, projectID, pageID string) (bool, error) {
	const q = `
delete from pages pg
using projects p
where p.id = pg.project_id
  and p.user_id = $1::uuid and pg.project_id = $2::uuid and pg.id = $3::uuid
  and p.deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, projectID, pageID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Touch bumps updated_at only. The editor "save" action is a timestamp
// touch, not a checkpoint: element writes are already persisted.
func (r *Repo) Touch(ctx context.Context, userDBID, projectID, pageID string) (bool, error) {
	const q = `
update pages pg
set updated_at = now()
from projects p
where p.id = pg.project_id
  and p.user_id = $1::uuid and pg.project_id = $2::uuid and pg.id = $3::uuid
  and p.deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, projectID, pageID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}
