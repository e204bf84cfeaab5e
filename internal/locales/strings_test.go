package locales

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGet_Fallbacks(t *testing.T) {
	t.Run("KnownKey", func(t *testing.T) {
		assert.NotEmpty(t, Get(LangEN, "welcome"))
		assert.NotEmpty(t, Get(LangRU, "welcome"))
		assert.NotEqual(t, Get(LangEN, "welcome"), Get(LangRU, "welcome"))
	})

	t.Run("UnknownLanguageFallsBackToEnglish", func(t *testing.T) {
		assert.Equal(t, Get(LangEN, "welcome"), Get("de", "welcome"))
	})

	t.Run("UnknownKeyFallsBackToKey", func(t *testing.T) {
		assert.Equal(t, "no_such_key", Get(LangEN, "no_such_key"))
		assert.Equal(t, "no_such_key", Get("de", "no_such_key"))
	})
}

func TestGet_Formatting(t *testing.T) {
	s := Get(LangEN, "cooldown_active", 42)
	assert.Contains(t, s, "42")

	s = Get(LangRU, "btn_new_applications", int64(3))
	assert.Contains(t, s, "3")
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, LangRU, Normalize("ru"))
	assert.Equal(t, LangEN, Normalize("en"))
	assert.Equal(t, LangEN, Normalize("fr"))
	assert.Equal(t, LangEN, Normalize(""))
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported(LangEN))
	assert.True(t, IsSupported(LangRU))
	assert.False(t, IsSupported("EN"))
	assert.False(t, IsSupported(""))
}

// Both tables must answer the same keys, otherwise a Russian user silently
// gets English text for the missing entries.
func TestTablesAreAligned(t *testing.T) {
	for key := range tables[LangEN] {
		if _, ok := tables[LangRU][key]; !ok {
			t.Errorf("key %q missing from the ru table", key)
		}
	}

	for key := range tables[LangRU] {
		if _, ok := tables[LangEN][key]; !ok {
			t.Errorf("key %q missing from the en table", key)
		}
	}
}

// Placeholder counts must match across languages so Get cannot produce
// %!d(MISSING) in one locale only.
func TestPlaceholdersAreAligned(t *testing.T) {
	for key, en := range tables[LangEN] {
		ru, ok := tables[LangRU][key]
		if !ok {
			continue
		}

		assert.Equal(t, strings.Count(en, "%"), strings.Count(ru, "%"), "key %q", key)
	}
}
