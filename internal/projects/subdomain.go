package projects

import (
	"regexp"
	"strings"
)

var (
	subdomainRe    = regexp.MustCompile(`^[a-z0-9-]+$`)
	nonAlphanumRe  = regexp.MustCompile(`[^a-z0-9]+`)
	hyphenRunsRe   = regexp.MustCompile(`-{2,}`)
)

// ValidSubdomain reports whether s is a legal publish target: lowercase
// letters, digits and hyphens only.
func ValidSubdomain(s string) bool {
	return subdomainRe.MatchString(s)
}

// DeriveSubdomain turns a project name into a subdomain: lowercased,
// every run of non-alphanumeric characters collapsed to a single hyphen,
// leading/trailing hyphens trimmed.
func DeriveSubdomain(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = nonAlphanumRe.ReplaceAllString(s, "-")
	s = hyphenRunsRe.ReplaceAllString(s, "-")
	s = strings.Trim(s, "-")
	if s == "" {
		s = "site"
	}
	return s
}
