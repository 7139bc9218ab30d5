package publish

import (
	"fmt"
	"html"
	"strings"
)

// EnsureMeta injects a charset/viewport tag and SEO title/description
// into the document head when absent. Existing tags are left alone;
// documents without a <head> get one prepended.
func EnsureMeta(doc, title, description string) string {
	lower := strings.ToLower(doc)

	var inject strings.Builder
	if !strings.Contains(lower, "charset=") {
		inject.WriteString("<meta charset=\"utf-8\">\n")
	}
	if !strings.Contains(lower, "name=\"viewport\"") && !strings.Contains(lower, "name='viewport'") {
		inject.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	}
	if title != "" && !strings.Contains(lower, "<title>") {
		fmt.Fprintf(&inject, "<title>%s</title>\n", html.EscapeString(title))
	}
	if description != "" && !strings.Contains(lower, "name=\"description\"") && !strings.Contains(lower, "name='description'") {
		fmt.Fprintf(&inject, "<meta name=\"description\" content=\"%s\">\n", html.EscapeString(description))
	}

	if inject.Len() == 0 {
		return doc
	}

	if i := strings.Index(lower, "<head>"); i >= 0 {
		at := i + len("<head>")
		return doc[:at] + "\n" + inject.String() + doc[at:]
	}

	return "<head>\n" + inject.String() + "</head>\n" + doc
}

// SiteURL computes the public URL for a subdomain.
func SiteURL(subdomain, publishDomain string) string {
	return fmt.Sprintf("https://%s.%s", subdomain, publishDomain)
}
