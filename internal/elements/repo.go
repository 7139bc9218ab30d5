package elements

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct {
	db *pgxpool.Pool
}

func NewRepo(db *pgxpool.Pool) *Repo {
	return &Repo{db: db}
}

const elementCols = `
  e.id::text, e.project_id::text, e.page_id::text, e.template_id::text,
  e.element_type, e.x_position, e.y_position, e.width, e.height, e.z_index,
  e.content, e.style, e.created_at, e.updated_at`

// ownedPage guards every element query: elements are visible only through
// their (project_id, page_id) scope, and the project must belong to the user.
const ownedPage = `
  e.project_id = $2::uuid and e.page_id = $3::uuid
  and exists (
    select 1 from projects p
    where p.id = e.project_id and p.user_id = $1::uuid and p.deleted_at is null
  )`

// FetchByPage returns the page's elements ordered by z_index descending
// then creation time descending. This is the only ordering guarantee.
func (r *Repo) FetchByPage(ctx context.Context, userDBID, projectID, pageID string) ([]Element, error) {
	q := `
select` + elementCols + `
from canvas_elements e
where` + ownedPage + `
order by e.z_index desc, e.created_at desc;
`
	rows, err := r.db.Query(ctx, q, userDBID, projectID, pageID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Element, 0, 32)
	for rows.Next() {
		var e Element
		var style []byte
		if err := rows.Scan(
			&e.ID, &e.ProjectID, &e.PageID, &e.TemplateID,
			&e.ElementType, &e.X, &e.Y, &e.Width, &e.Height, &e.ZIndex,
			&e.Content, &style, &e.CreatedAt, &e.UpdatedAt,
		); err != nil {
			return nil, err
		}
		if err := unmarshalStyle(style, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

type CreateElement struct {
	ElementType string
	X           float64
	Y           float64
	TemplateID  *string
}

// Create inserts a new element at the dropped position with per-type
// default size and content. Positions are rounded on write.
func (r *Repo) Create(ctx context.Context, userDBID, projectID, pageID string, in CreateElement) (*Element, error) {
	if strings.TrimSpace(in.ElementType) == "" {
		return nil, fmt.Errorf("element_type required")
	}

	width, height, content := DefaultsFor(in.ElementType)

	q := `
insert into canvas_elements
  (id, project_id, page_id, template_id, element_type, x_position, y_position, width, height, z_index, content, style)
select $4::uuid, pg.project_id, pg.id, $5::uuid, $6, $7, $8, $9, $10,
  coalesce((select max(z_index) + 1 from canvas_elements ce where ce.page_id = pg.id), 0),
  $11, '{}'::jsonb
from pages pg
join projects p on p.id = pg.project_id
where p.user_id = $1::uuid and pg.project_id = $2::uuid and pg.id = $3::uuid and p.deleted_at is null
returning id::text, project_id::text, page_id::text, template_id::text,
  element_type, x_position, y_position, width, height, z_index,
  content, style, created_at, updated_at;
`
	var e Element
	var style []byte
	err := r.db.QueryRow(ctx, q,
		userDBID, projectID, pageID,
		uuid.New().String(), in.TemplateID, in.ElementType,
		RoundPos(in.X), RoundPos(in.Y), width, height, content,
	).Scan(
		&e.ID, &e.ProjectID, &e.PageID, &e.TemplateID,
		&e.ElementType, &e.X, &e.Y, &e.Width, &e.Height, &e.ZIndex,
		&e.Content, &style, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := unmarshalStyle(style, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Partial is a partial element update. Nil fields are left untouched.
// Last write wins; there is no concurrency token.
type Partial struct {
	ElementType *string            `json:"element_type,omitempty"`
	X           *float64           `json:"x_position,omitempty"`
	Y           *float64           `json:"y_position,omitempty"`
	Width       *int               `json:"width,omitempty"`
	Height      *int               `json:"height,omitempty"`
	ZIndex      *int               `json:"z_index,omitempty"`
	Content     *json.RawMessage   `json:"content,omitempty"`
	Style       *map[string]string `json:"style,omitempty"`
}

func (r *Repo) Update(ctx context.Context, userDBID, projectID, pageID, elementID string, in Partial) (bool, error) {
	set := make([]string, 0, 8)
	args := []any{userDBID, projectID, pageID, elementID}

	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if in.ElementType != nil {
		add("element_type", *in.ElementType)
	}
	if in.X != nil {
		add("x_position", RoundPos(*in.X))
	}
	if in.Y != nil {
		add("y_position", RoundPos(*in.Y))
	}
	if in.Width != nil {
		add("width", *in.Width)
	}
	if in.Height != nil {
		add("height", *in.Height)
	}
	if in.ZIndex != nil {
		add("z_index", *in.ZIndex)
	}
	if in.Content != nil {
		add("content", []byte(*in.Content))
	}
	if in.Style != nil {
		b, err := json.Marshal(*in.Style)
		if err != nil {
			return false, fmt.Errorf("marshal style: %w", err)
		}
		add("style", b)
	}

	if len(set) == 0 {
		return false, fmt.Errorf("no fields to update")
	}

	q := `
update canvas_elements e
set ` + strings.Join(set, ", ") + `, updated_at = now()
where e.id = $4::uuid and` + ownedPage + `;
`
	ct, err := r.db.Exec(ctx, q, args...)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// Delete removes the element immediately. No soft-delete, no undo state.
func (r *Repo) Delete(ctx context.Context, userDBID, projectID, pageID, elementID string) (bool, error) {
	q := `
delete from canvas_elements e
where e.id = $4::uuid and` + ownedPage + `;
`
	ct, err := r.db.Exec(ctx, q, userDBID, projectID, pageID, elementID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

func unmarshalStyle(raw []byte, e *Element) error {
	e.Style = map[string]string{}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, &e.Style); err != nil {
		return fmt.Errorf("unmarshal style for element %s: %w", e.ID, err)
	}
	return nil
}
