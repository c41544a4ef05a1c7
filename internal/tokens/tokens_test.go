package tokens

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect []string
	}{
		{
			name:   "empty input",
			input:  "",
			expect: []string{},
		},
		{
			name:   "drops short tokens and stop words",
			input:  "We are building the API for our team",
			expect: []string{"building", "team"},
		},
		{
			name:   "strips punctuation and lower-cases",
			input:  `Scaled (Kubernetes) clusters; "shipped" it!`,
			expect: []string{"scaled", "kubernetes", "clusters", "shipped"},
		},
		{
			name:   "keeps hyphenated words intact",
			input:  "Customer-first culture",
			expect: []string{"customer-first", "culture"},
		},
		{
			name:   "whitespace only",
			input:  " \t\n ",
			expect: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expect, Normalize(tt.input))
		})
	}
}

func TestSet(t *testing.T) {
	set := Set("Frontend Developer", "developer tools")

	assert.Len(t, set, 3)
	assert.True(t, set["frontend"])
	assert.True(t, set["developer"])
	assert.True(t, set["tools"])
}

func TestExtractKeywords(t *testing.T) {
	t.Run("hiring narrative", func(t *testing.T) {
		got := ExtractKeywords("We need a React developer who can scale our platform and mentor the team", 3)

		assert.Equal(t, []string{"need", "react", "developer"}, got)
		for _, token := range got {
			assert.Greater(t, len(token), 3)
			assert.NotContains(t, stopWords, token)
		}
	})

	t.Run("frequency wins over first occurrence", func(t *testing.T) {
		got := ExtractKeywords("design systems, platform design, design reviews and platform growth", 3)
		assert.Equal(t, []string{"design", "platform", "systems"}, got)
	})

	t.Run("zero count", func(t *testing.T) {
		assert.Empty(t, ExtractKeywords("anything goes here", 0))
	})

	t.Run("fewer tokens than requested", func(t *testing.T) {
		assert.Equal(t, []string{"golang"}, ExtractKeywords("golang", DefaultKeywordCount))
	})
}
