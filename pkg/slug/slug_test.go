// Copyright (c) 2026 Kritika. All rights reserved.

package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "simple", input: "Movies", want: "movies"},
		{name: "spaces", input: "Science Fiction", want: "science-fiction"},
		{name: "accents", input: "Café Olé", want: "cafe-ole"},
		{name: "punctuation", input: "Rock & Roll!", want: "rock-roll"},
		{name: "multiple hyphens", input: "a -- b", want: "a-b"},
		{name: "leading trailing", input: "  trimmed  ", want: "trimmed"},
		{name: "digits", input: "Top 10", want: "top-10"},
		{name: "empty", input: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, From(tc.input))
		})
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("science-fiction"))
	assert.False(t, IsValid("Science Fiction"))
	assert.False(t, IsValid(""))
}
