package elements

import (
	"encoding/json"
	"strings"
	"time"
)

// Element is a single positioned visual unit on a canvas page.
//
// ElementType may carry a compound key "baseType:designVariant"
// (e.g. "cyber-button:cb-3"); the variant selects among the visual
// presets for the same logical element. Container-like types nest
// child element specs inline in Content, not as separate rows.
type Element struct {
	ID          string            `json:"id"`
	ProjectID   string            `json:"project_id"`
	PageID      string            `json:"page_id"`
	TemplateID  *string           `json:"template_id,omitempty"`
	ElementType string            `json:"element_type"`
	X           int               `json:"x_position"`
	Y           int               `json:"y_position"`
	Width       int               `json:"width"`
	Height      int               `json:"height"`
	ZIndex      int               `json:"z_index"`
	Content     json.RawMessage   `json:"content"`
	Style       map[string]string `json:"style"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// BaseType strips the design-variant suffix from an element type.
func BaseType(elementType string) string {
	if i := strings.IndexByte(elementType, ':'); i >= 0 {
		return elementType[:i]
	}
	return elementType
}

// Variant returns the design-variant suffix, or "" when there is none.
func Variant(elementType string) string {
	if i := strings.IndexByte(elementType, ':'); i >= 0 {
		return elementType[i+1:]
	}
	return ""
}
