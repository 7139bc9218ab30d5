package publish

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureMeta(t *testing.T) {
	t.Run("injects into an existing head", func(t *testing.T) {
		doc := "<html><head></head><body>hi</body></html>"
		out := EnsureMeta(doc, "My Site", "A site")

		assert.Contains(t, out, `<meta charset="utf-8">`)
		assert.Contains(t, out, `name="viewport"`)
		assert.Contains(t, out, "<title>My Site</title>")
		assert.Contains(t, out, `name="description" content="A site"`)
		assert.True(t, strings.Index(out, "<title>") < strings.Index(out, "</head>"))
	})

	t.Run("leaves existing tags alone", func(t *testing.T) {
		doc := `<html><head><meta charset="utf-8"><title>Kept</title></head><body></body></html>`
		out := EnsureMeta(doc, "Ignored", "")

		assert.Equal(t, 1, strings.Count(out, "charset="))
		assert.Contains(t, out, "<title>Kept</title>")
		assert.NotContains(t, out, "Ignored")
	})

	t.Run("prepends a head when there is none", func(t *testing.T) {
		out := EnsureMeta("<body>raw</body>", "T", "")
		assert.True(t, strings.HasPrefix(out, "<head>"))
		assert.Contains(t, out, "<body>raw</body>")
	})

	t.Run("escapes title and description", func(t *testing.T) {
		out := EnsureMeta("<head></head>", `<b>"x"</b>`, "")
		assert.NotContains(t, out, "<title><b>")
		assert.Contains(t, out, "&lt;b&gt;")
	})
}

func TestSiteURL(t *testing.T) {
	assert.Equal(t, "https://my-site.displan.design", SiteURL("my-site", "displan.design"))
}
