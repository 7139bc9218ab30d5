package render

import (
	"fmt"
	"html"
	"sort"
	"strings"
)

// Renderer turns element specs into static HTML. It is a template
// catalog, not a layout engine: every element paints at its absolute
// editor-space position inside a relatively positioned section.
type Renderer struct{}

func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderSite assembles the full HTML document for the first page of the
// content tree (published sites serve one document per subdomain).
func (r *Renderer) RenderSite(content *Content) (string, error) {
	if content == nil || len(content.Pages) == 0 {
		return "", fmt.Errorf("content has no pages")
	}

	page := content.Pages[0]
	for _, p := range content.Pages {
		if p.Slug == "index" || p.Slug == "home" {
			page = p
			break
		}
	}

	title := content.Title
	if title == "" {
		title = page.Name
	}

	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	if content.Description != "" {
		fmt.Fprintf(&b, "<meta name=\"description\" content=\"%s\">\n", html.EscapeString(content.Description))
	}
	b.WriteString("<style>body{margin:0;font-family:system-ui,sans-serif}</style>\n")
	b.WriteString("</head>\n<body>\n")

	for _, section := range page.Sections {
		r.renderSection(&b, section)
	}

	b.WriteString("</body>\n</html>\n")
	return b.String(), nil
}

func (r *Renderer) renderSection(b *strings.Builder, s Section) {
	height := 0
	for _, el := range s.Elements {
		if bottom := int(el.Y) + el.Height; bottom > height {
			height = bottom
		}
	}
	if height < 100 {
		height = 100
	}

	style := fmt.Sprintf("position:relative;min-height:%dpx;overflow:hidden", height)
	if extra := styleAttr(s.Style); extra != "" {
		style += ";" + extra
	}

	fmt.Fprintf(b, "<section data-section=\"%s\" style=\"%s\">\n", html.EscapeString(s.ID), style)

	// higher z-index paints first in the editor's read order; DOM order
	// is irrelevant once z-index is inlined, but keep it stable anyway
	elements := make([]ElementSpec, len(s.Elements))
	copy(elements, s.Elements)
	sort.SliceStable(elements, func(i, j int) bool { return elements[i].ZIndex > elements[j].ZIndex })

	for _, el := range elements {
		b.WriteString(r.RenderElement(el))
		b.WriteString("\n")
	}

	b.WriteString("</section>\n")
}

// RenderElement dispatches on the element's base type and substitutes
// content and style into fixed markup. Unknown types degrade to an
// empty positioned div rather than failing the publish.
func (r *Renderer) RenderElement(el ElementSpec) string {
	base, variant := splitType(el.ElementType)
	style := r.inlineStyle(el, variant)

	switch base {
	case "heading":
		return fmt.Sprintf(`<h1 style="%s">%s</h1>`, style, html.EscapeString(el.Content.Text))
	case "text":
		return fmt.Sprintf(`<p style="%s">%s</p>`, style, html.EscapeString(el.Content.Text))
	case "button", "cyber-button", "neon-button", "glass-button", "retro-button", "minimal-button":
		href := el.Content.Href
		if href == "" {
			href = "#"
		}
		return fmt.Sprintf(`<a href="%s" style="%s;display:flex;align-items:center;justify-content:center;text-decoration:none;cursor:pointer">%s</a>`,
			html.EscapeString(href), style, html.EscapeString(el.Content.Text))
	case "link":
		href := el.Content.Href
		if href == "" {
			href = "#"
		}
		return fmt.Sprintf(`<a href="%s" style="%s">%s</a>`, html.EscapeString(href), style, html.EscapeString(el.Content.Text))
	case "image":
		return fmt.Sprintf(`<img src="%s" alt="%s" style="%s;object-fit:cover">`,
			html.EscapeString(el.Content.Src), html.EscapeString(el.Content.Alt), style)
	case "video":
		return fmt.Sprintf(`<video src="%s" style="%s" controls></video>`, html.EscapeString(el.Content.Src), style)
	case "divider":
		return fmt.Sprintf(`<hr style="%s;border:none;background:#ddd">`, style)
	case "container", "columns", "grid":
		var b strings.Builder
		fmt.Fprintf(&b, `<div style="%s">`, style)
		for _, child := range el.Content.Children {
			b.WriteString(r.RenderElement(child))
		}
		b.WriteString(`</div>`)
		return b.String()
	default:
		return fmt.Sprintf(`<div style="%s"></div>`, style)
	}
}

func (r *Renderer) inlineStyle(el ElementSpec, variant string) string {
	var parts []string
	parts = append(parts, fmt.Sprintf("position:absolute;left:%dpx;top:%dpx;width:%dpx;height:%dpx;z-index:%d",
		int(el.X), int(el.Y), el.Width, el.Height, el.ZIndex))

	if s := styleAttr(el.Style); s != "" {
		parts = append(parts, s)
	}
	if v := VariantCSS(variant); v != "" {
		parts = append(parts, v)
	}
	return strings.Join(parts, ";")
}

// styleAttr flattens a style map into CSS declarations in a stable
// key order. Values are attribute-escaped; property names pass through
// (they come from a fixed style-panel vocabulary).
func styleAttr(style map[string]string) string {
	if len(style) == 0 {
		return ""
	}

	keys := make([]string, 0, len(style))
	for k := range style {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+":"+html.EscapeString(style[k]))
	}
	return strings.Join(parts, ";")
}

func splitType(elementType string) (base, variant string) {
	if i := strings.IndexByte(elementType, ':'); i >= 0 {
		return elementType[:i], elementType[i+1:]
	}
	return elementType, ""
}
