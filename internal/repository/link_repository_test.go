package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeLike(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
	}{
		{"plain text untouched", "abc123", "abc123"},
		{"underscore becomes literal", "a_c", `a\_c`},
		{"percent becomes literal", "50%", `50\%`},
		{"backslash doubled", `a\c`, `a\\c`},
		{"mixed wildcards", `_%\`, `\_\%\\`},
		{"empty", "", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, escapeLike(tc.input))
		})
	}
}
