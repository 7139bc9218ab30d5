package projects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidSubdomain(t *testing.T) {
	t.Run("accepts lowercase letters digits and hyphens", func(t *testing.T) {
		assert.True(t, ValidSubdomain("my-site"))
		assert.True(t, ValidSubdomain("site42"))
		assert.True(t, ValidSubdomain("a"))
	})

	t.Run("rejects anything else", func(t *testing.T) {
		assert.False(t, ValidSubdomain("My Site!"))
		assert.False(t, ValidSubdomain("MySite"))
		assert.False(t, ValidSubdomain("my_site"))
		assert.False(t, ValidSubdomain("my.site"))
		assert.False(t, ValidSubdomain(""))
	})
}

func TestDeriveSubdomain(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "MySite", "mysite"},
		{"collapses punctuation runs to one hyphen", "My  Site!", "my-site"},
		{"trims edge hyphens", "--portfolio--", "portfolio"},
		{"keeps digits", "Shop 24/7", "shop-24-7"},
		{"empty name falls back", "!!!", "site"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DeriveSubdomain(tc.in)
			assert.Equal(t, tc.want, got)
			assert.True(t, ValidSubdomain(got), "derived subdomain must be valid")
		})
	}
}
