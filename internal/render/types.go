package render

// Content is the structured publish payload: the full tree a site is
// regenerated from. It mirrors the editor's persisted shape, pages
// holding sections holding element specs.
type Content struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Pages       []PageTree `json:"pages"`
}

type PageTree struct {
	Name     string    `json:"name"`
	Slug     string    `json:"slug"`
	Sections []Section `json:"sections"`
}

type Section struct {
	ID       string            `json:"id"`
	Style    map[string]string `json:"style,omitempty"`
	Elements []ElementSpec     `json:"elements"`
}

// ElementSpec is the wire form of a canvas element inside a publish
// payload. Children of container-like types nest inline, matching how
// the element store embeds them in content rather than as rows.
type ElementSpec struct {
	ID          string            `json:"id,omitempty"`
	ElementType string            `json:"element_type"`
	X           float64           `json:"x_position"`
	Y           float64           `json:"y_position"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	ZIndex      int               `json:"z_index"`
	Content     ElementContent    `json:"content"`
	Style       map[string]string `json:"style,omitempty"`
}

type ElementContent struct {
	Text     string        `json:"text,omitempty"`
	Href     string        `json:"href,omitempty"`
	Src      string        `json:"src,omitempty"`
	Alt      string        `json:"alt,omitempty"`
	Children []ElementSpec `json:"children,omitempty"`
}
