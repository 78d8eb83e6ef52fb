package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJoinText(t *testing.T) {
	tests := []struct {
		name     string
		input    []Transcription
		expected string
	}{
		{
			name: "ordered parts joined with single spaces",
			input: []Transcription{
				{Text: "first part"},
				{Text: "second part"},
				{Text: "third part"},
			},
			expected: "first part second part third part",
		},
		{
			name: "surrounding whitespace trimmed per part",
			input: []Transcription{
				{Text: "  leading"},
				{Text: "trailing  "},
			},
			expected: "leading trailing",
		},
		{
			name:     "single part",
			input:    []Transcription{{Text: "only"}},
			expected: "only",
		},
		{
			name:     "empty input",
			input:    nil,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, JoinText(tt.input))
		})
	}
}
