package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSubdomainTaken = errors.New("subdomain already taken")

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Subdomain string    `json:"subdomain"`
	Published bool      `json:"is_published"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Repo) Create(ctx context.Context, userDBID, name string) (*Project, error) {
	if name == "" {
		return nil, fmt.Errorf("name required")
	}

	base := DeriveSubdomain(name)

	// On a subdomain collision, suffix and retry a few times.
	for i := 0; i < 5; i++ {
		sub := base
		if i > 0 {
			sub = fmt.Sprintf("%s-%d", base, i+1)
		}

		const q = `
insert into projects (user_id, name, subdomain)
values ($1::uuid, $2, $3)
returning id::text, name, subdomain, is_published, created_at, updated_at;
`
		var p Project
		err := r.db.QueryRow(ctx, q, userDBID, name, sub).
			Scan(&p.ID, &p.Name, &p.Subdomain, &p.Published, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return &p, nil
		}

		// unique violation on subdomain → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to pick a free subdomain for %q", name)
}

func (r *Repo) List(ctx context.Context, userDBID string) ([]Project, error) {
	const q = `
select id::text, name, subdomain, is_published, created_at, updated_at
from projects
where user_id = $1::uuid and deleted_at is null
order by created_at desc;
`
	rows, err := r.db.Query(ctx, q, userDBID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Project, 0, 16)
	for rows.Next() {
		var p Project
		if err := rows.Scan(&p.ID, &p.Name, &p.Subdomain, &p.Published, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, userDBID, projectID string) (*Project, error) {
	const q = `
select id::text, name, subdomain, is_published, created_at, updated_at
from projects
where user_id = $1::uuid and id = $2::uuid and deleted_at is null;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, projectID).
		Scan(&p.ID, &p.Name, &p.Subdomain, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) Rename(ctx context.Context, userDBID, projectID, newName string) (*Project, error) {
	const q = `
update projects
set name = $3, updated_at = now()
where user_id = $1::uuid and id = $2::uuid and deleted_at is null
returning id::text, name, subdomain, is_published, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, projectID, newName).
		Scan(&p.ID, &p.Name, &p.Subdomain, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SetSubdomain(ctx context.Context, userDBID, projectID, subdomain string) (*Project, error) {
	const q = `
update projects
set subdomain = $3, updated_at = now()
where user_id = $1::uuid and id = $2::uuid and deleted_at is null
returning id::text, name, subdomain, is_published, created_at, updated_at;
`
	var p Project
	err := r.db.QueryRow(ctx, q, userDBID, projectID, subdomain).
		Scan(&p.ID, &p.Name, &p.Subdomain, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrSubdomainTaken
		}
		return nil, err
	}
	return &p, nil
}

func (r *Repo) SetPublished(ctx context.Context, userDBID, projectID string, published bool) (bool, error) {
	const q = `
update projects
set is_published = $3, updated_at = now()
where user_id = $1::uuid and id = $2::uuid and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, projectID, published)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func (r *Repo) SoftDelete(ctx context.Context, userDBID, projectID string) (bool, error) {
	const q = `
update projects
set deleted_at = now(), updated_at = now()
where user_id = $1::uuid and id = $2::uuid and deleted_at is null;
`
	ct, err := r.db.Exec(ctx, q, userDBID, projectID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// GetBySubdomain is unauthenticated: the public serving path resolves a
// tenant by subdomain only.
func (r *Repo) GetBySubdomain(ctx context.Context, subdomain string) (*Project, error) {
	const q = `
select id::text, name, subdomain, is_published, created_at, updated_at
from projects
where subdomain = $1 and deleted_at is null;
`
	var p Project
	err := r.db.QueryRow(ctx, q, subdomain).
		Scan(&p.ID, &p.Name, &p.Subdomain, &p.Published, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// IsNotFound reports whether err is the pgx no-rows sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
