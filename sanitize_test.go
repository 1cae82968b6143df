package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"trims whitespace", "  Marco  ", "Marco", false},
		{"keeps accents", "Nicolò", "Nicolò", false},
		{"strips markup", "<b>Marco</b>", "bMarco/b", false},
		{"strips control runes", "Mar\x00co", "Marco", false},
		{"too short", "M", "", true},
		{"too long", strings.Repeat("a", 21), "", true},
		{"empty after cleaning", "  <> ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sanitizeName(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeAnswer(t *testing.T) {
	assert.Equal(t, "Gatto", sanitizeAnswer("  Gatto  "))
	assert.Equal(t, "", sanitizeAnswer("   "))
	assert.Equal(t, "scriptGatto/script", sanitizeAnswer(`<script>"Gatto"</script>`))

	long := strings.Repeat("a", 80)
	assert.Len(t, []rune(sanitizeAnswer(long)), answerMaxLen)
}
