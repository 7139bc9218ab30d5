package elements

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundPos(t *testing.T) {
	assert.Equal(t, 100, RoundPos(100.4))
	assert.Equal(t, 101, RoundPos(100.5))
	assert.Equal(t, 101, RoundPos(100.6))
	assert.Equal(t, -3, RoundPos(-2.7))
	assert.Equal(t, 0, RoundPos(0))
}

func TestDefaultsFor(t *testing.T) {
	t.Run("known type", func(t *testing.T) {
		w, h, content := DefaultsFor("heading")
		assert.Equal(t, 320, w)
		assert.Equal(t, 48, h)

		var c map[string]any
		require.NoError(t, json.Unmarshal(content, &c))
		assert.Equal(t, "Heading", c["text"])
	})

	t.Run("variant button uses the button footprint", func(t *testing.T) {
		w, h, content := DefaultsFor("cyber-button:cb-3")
		bw, bh, _ := DefaultsFor("button")
		assert.Equal(t, bw, w)
		assert.Equal(t, bh, h)

		var c map[string]any
		require.NoError(t, json.Unmarshal(content, &c))
		assert.Equal(t, "Click me", c["text"])
	})

	t.Run("unknown type gets a generic box", func(t *testing.T) {
		w, h, content := DefaultsFor("hologram")
		assert.Equal(t, 200, w)
		assert.Equal(t, 100, h)
		assert.JSONEq(t, `{}`, string(content))
	})
}

func TestBaseTypeAndVariant(t *testing.T) {
	assert.Equal(t, "cyber-button", BaseType("cyber-button:cb-3"))
	assert.Equal(t, "cb-3", Variant("cyber-button:cb-3"))

	assert.Equal(t, "text", BaseType("text"))
	assert.Equal(t, "", Variant("text"))
}
