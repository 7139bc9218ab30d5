package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSite(t *testing.T) {
	r := NewRenderer()

	t.Run("renders full document with meta", func(t *testing.T) {
		content := &Content{
			Title:       "My Portfolio",
			Description: "Work & projects",
			Pages: []PageTree{{
				Name: "Home",
				Slug: "index",
				Sections: []Section{{
					ID: "hero",
					Elements: []ElementSpec{
						{ElementType: "heading", X: 40, Y: 20, Width: 320, Height: 48, Content: ElementContent{Text: "Hello"}},
					},
				}},
			}},
		}

		out, err := r.RenderSite(content)
		require.NoError(t, err)

		assert.Contains(t, out, "<!DOCTYPE html>")
		assert.Contains(t, out, `<meta charset="utf-8">`)
		assert.Contains(t, out, "<title>My Portfolio</title>")
		assert.Contains(t, out, `content="Work &amp; projects"`)
		assert.Contains(t, out, "<h1")
		assert.Contains(t, out, ">Hello</h1>")
	})

	t.Run("prefers the index page", func(t *testing.T) {
		content := &Content{
			Pages: []PageTree{
				{Name: "About", Slug: "about"},
				{Name: "Home", Slug: "index"},
			},
		}

		out, err := r.RenderSite(content)
		require.NoError(t, err)
		assert.Contains(t, out, "<title>Home</title>")
	})

	t.Run("empty content errors", func(t *testing.T) {
		_, err := r.RenderSite(&Content{})
		assert.Error(t, err)
	})
}

func TestRenderElement(t *testing.T) {
	r := NewRenderer()

	t.Run("positions absolutely at integer coordinates", func(t *testing.T) {
		out := r.RenderElement(ElementSpec{
			ElementType: "text", X: 10, Y: 20, Width: 280, Height: 24, ZIndex: 3,
			Content: ElementContent{Text: "hi"},
		})
		assert.Contains(t, out, "position:absolute;left:10px;top:20px;width:280px;height:24px;z-index:3")
		assert.True(t, strings.HasPrefix(out, "<p "))
	})

	t.Run("escapes user text", func(t *testing.T) {
		out := r.RenderElement(ElementSpec{
			ElementType: "heading",
			Content:     ElementContent{Text: `<script>alert("x")</script>`},
		})
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
	})

	t.Run("button variant pulls preset css", func(t *testing.T) {
		out := r.RenderElement(ElementSpec{
			ElementType: "cyber-button:cb-1",
			Content:     ElementContent{Text: "Go", Href: "/go"},
		})
		assert.Contains(t, out, `href="/go"`)
		assert.Contains(t, out, VariantCSS("cb-1"))
	})

	t.Run("missing href falls back to hash", func(t *testing.T) {
		out := r.RenderElement(ElementSpec{ElementType: "link", Content: ElementContent{Text: "x"}})
		assert.Contains(t, out, `href="#"`)
	})

	t.Run("container nests children", func(t *testing.T) {
		out := r.RenderElement(ElementSpec{
			ElementType: "container",
			Content: ElementContent{Children: []ElementSpec{
				{ElementType: "text", Content: ElementContent{Text: "inner"}},
			}},
		})
		assert.Contains(t, out, ">inner</p>")
	})

	t.Run("unknown type degrades to empty div", func(t *testing.T) {
		out := r.RenderElement(ElementSpec{ElementType: "hologram"})
		assert.True(t, strings.HasPrefix(out, "<div "))
		assert.Contains(t, out, "></div>")
	})

	t.Run("style map flattens in stable order", func(t *testing.T) {
		out := r.RenderElement(ElementSpec{
			ElementType: "text",
			Style:       map[string]string{"color": "#111", "background": "#fff"},
		})
		assert.Contains(t, out, "background:#fff;color:#111")
	})
}
