package assets

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Asset struct {
	ID          string    `json:"id"`
	ProjectID   string    `json:"project_id"`
	PageID      string    `json:"page_id"`
	FileName    string    `json:"file_name"`
	Path        string    `json:"path"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	CreatedAt   time.Time `json:"created_at"`
}

func (r *Repo) Create(ctx context.Context, userDBID string, a Asset) (*Asset, error) {
	const q = `
insert into assets (project_id, page_id, file_name, path, url, content_type, size_bytes)
select p.id, $3::uuid, $4, $5, $6, $7, $8
from projects p
where p.id = $2::uuid and p.user_id = $1::uuid and p.deleted_at is null
returning id::text, project_id::text, page_id::text, file_name, path, url, content_type, size_bytes, created_at;
`
	var out Asset
	err := r.db.QueryRow(ctx, q, userDBID, a.ProjectID, a.PageID, a.FileName, a.Path, a.URL, a.ContentType, a.SizeBytes).
		Scan(&out.ID, &out.ProjectID, &out.PageID, &out.FileName, &out.Path, &out.URL, &out.ContentType, &out.SizeBytes, &out.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *Repo) ListByPage(ctx context.Context, userDBID, projectID, pageID string) ([]Asset, error) {
	const q = `
select a.id::text, a.project_id::text, a.page_id::text, a.file_name, a.path, a.url, a.content_type, a.size_bytes, a.created_at
from assets a
join projects p on p.id = a.project_id
where p.user_id = $1::uuid and a.project_id = $2::uuid and a.page_id = $3::uuid and p.deleted_at is null
order by a.created_at desc;
`
	rows, err := r.db.Query(ctx, q, userDBID, projectID, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Asset, 0, 16)
	for rows.Next() {
		var a Asset
		if err := rows.Scan(&a.ID, &a.ProjectID, &a.PageID, &a.FileName, &a.Path, &a.URL, &a.ContentType, &a.SizeBytes, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// Delete removes the row and returns the stored object path so the
// caller can delete the blob too.
func (r *Repo) Delete(ctx context.Context, userDBID, assetID string) (string, bool, error) {
	const q = `
delete from assets a
using projects p
where p.id = a.project_id and a.id = $2::uuid and p.user_id = $1::uuid
returning a.path;
`
	var path string
	err := r.db.QueryRow(ctx, q, userDBID, assetID).Scan(&path)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return path, true, nil
}
