package elements

import (
	"encoding/json"
	"math"
)

type typeDefaults struct {
	Width   int
	Height  int
	Content map[string]any
}

// Palette drops land with a per-type default size and content; the style
// panel takes over from there.
var defaultsByBaseType = map[string]typeDefaults{
	"heading":   {Width: 320, Height: 48, Content: map[string]any{"text": "Heading"}},
	"text":      {Width: 280, Height: 24, Content: map[string]any{"text": "Edit this text"}},
	"button":    {Width: 140, Height: 44, Content: map[string]any{"text": "Click me", "href": "#"}},
	"link":      {Width: 120, Height: 24, Content: map[string]any{"text": "Link", "href": "#"}},
	"image":     {Width: 240, Height: 180, Content: map[string]any{"src": "", "alt": ""}},
	"video":     {Width: 320, Height: 180, Content: map[string]any{"src": ""}},
	"container": {Width: 400, Height: 300, Content: map[string]any{"children": []any{}}},
	"columns":   {Width: 600, Height: 240, Content: map[string]any{"children": []any{}}},
	"grid":      {Width: 600, Height: 400, Content: map[string]any{"children": []any{}}},
	"form":      {Width: 360, Height: 280, Content: map[string]any{"fields": []any{}}},
	"divider":   {Width: 400, Height: 2, Content: map[string]any{}},
}

// variant buttons share the button footprint
var buttonFamilies = map[string]bool{
	"cyber-button":   true,
	"neon-button":    true,
	"glass-button":   true,
	"retro-button":   true,
	"minimal-button": true,
}

// DefaultsFor returns the initial size and content for a newly dropped
// element of the given type. Unknown types get a generic box.
func DefaultsFor(elementType string) (width, height int, content json.RawMessage) {
	base := BaseType(elementType)

	d, ok := defaultsByBaseType[base]
	if !ok && buttonFamilies[base] {
		d, ok = defaultsByBaseType["button"], true
	}
	if !ok {
		d = typeDefaults{Width: 200, Height: 100, Content: map[string]any{}}
	}

	raw, err := json.Marshal(d.Content)
	if err != nil {
		raw = json.RawMessage(`{}`)
	}
	return d.Width, d.Height, raw
}

// RoundPos rounds an editor-space coordinate to the nearest integer.
// The store rounds on write, so reads always return integers.
func RoundPos(v float64) int {
	return int(math.Round(v))
}
