package langcode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/pushkit/pkg/langcode"
)

func TestName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code string
		name string
		ok   bool
	}{
		{"en", "English", true},
		{"de", "German", true},
		{"zh-Hans", "Chinese (Simplified)", true},
		{"xx", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.code, func(t *testing.T) {
			t.Parallel()

			name, ok := langcode.Name(tt.code)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.name, name)
		})
	}
}

func TestValid(t *testing.T) {
	t.Parallel()

	t.Run("table codes", func(t *testing.T) {
		t.Parallel()

		for _, code := range langcode.Codes() {
			assert.True(t, langcode.Valid(code), "table code %q must be valid", code)
		}
	})

	t.Run("well formed tags outside the table", func(t *testing.T) {
		t.Parallel()

		assert.True(t, langcode.Valid("pt-BR"))
		assert.True(t, langcode.Valid("en-GB"))
	})

	t.Run("garbage", func(t *testing.T) {
		t.Parallel()

		assert.False(t, langcode.Valid(""))
		assert.False(t, langcode.Valid("not a tag"))
		assert.False(t, langcode.Valid("123"))
	})
}

func TestCodes(t *testing.T) {
	t.Parallel()

	codes := langcode.Codes()
	require.NotEmpty(t, codes)
	assert.Contains(t, codes, langcode.Default)
	assert.IsIncreasing(t, codes)
}
