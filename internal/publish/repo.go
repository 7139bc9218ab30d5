package publish

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("published site not found")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

// PublishedWebsite is the pre-rendered path: one HTML blob per project,
// upserted wholesale on every publish.
type PublishedWebsite struct {
	ProjectID   string    `json:"project_id"`
	Subdomain   string    `json:"subdomain"`
	HTML        string    `json:"-"`
	Status      string    `json:"status"`
	PublishedAt time.Time `json:"published_at"`
}

// UpsertWebsite stores the rendered blob keyed by project_id; publishing
// the same project twice overwrites rather than duplicating.
func (r *Repo) UpsertWebsite(ctx context.Context, projectID, subdomain, html string) error {
	const q = `
insert into published_websites (project_id, subdomain, html_content, status, published_at)
values ($1::uuid, $2, $3, 'published', now())
on conflict (project_id) do update
set subdomain = excluded.subdomain,
    html_content = excluded.html_content,
    status = 'published',
    published_at = now();
`
	_, err := r.db.Exec(ctx, q, projectID, subdomain, html)
	return err
}

func (r *Repo) GetWebsiteBySubdomain(ctx context.Context, subdomain string) (*PublishedWebsite, error) {
	const q = `
select project_id::text, subdomain, html_content, status, published_at
from published_websites
where subdomain = $1 and status = 'published';
`
	var w PublishedWebsite
	err := r.db.QueryRow(ctx, q, subdomain).
		Scan(&w.ProjectID, &w.Subdomain, &w.HTML, &w.Status, &w.PublishedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

// UpsertSite is the second, site_name-keyed path used by the structured
// update endpoint. The two tables stay separate on purpose; the serving
// edge reconciles them (websites first, sites as fallback).
func (r *Repo) UpsertSite(ctx context.Context, siteName, html string) error {
	const q = `
insert into published_sites (site_name, html_content, status, updated_at)
values ($1, $2, 'published', now())
on conflict (site_name) do update
set html_content = excluded.html_content,
    status = 'published',
    updated_at = now();
`
	_, err := r.db.Exec(ctx, q, siteName, html)
	return err
}

func (r *Repo) GetSiteByName(ctx context.Context, siteName string) (string, error) {
	const q = `
select html_content
from published_sites
where site_name = $1 and status = 'published';
`
	var html string
	err := r.db.QueryRow(ctx, q, siteName).Scan(&html)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return html, nil
}
