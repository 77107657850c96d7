package pdf

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateTextKeepsRunesWhole(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{"short text untouched", "daily standup notes", 50, "daily standup notes"},
		{"ascii cut", "abcdefgh", 5, "abcde..."},
		{"multi-byte cut on rune boundary", "проверил отчёты", 8, "проверил..."},
		{"zero max disables truncation", "abcdef", 0, "abcdef"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := truncateText(tc.in, tc.max)
			assert.Equal(t, tc.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}
