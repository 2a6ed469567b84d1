package strategy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asimons81/guide-generator/internal/types"
)

func TestParseOutline(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantError bool
		validate  func(*testing.T, []types.Section)
	}{
		{
			name: "valid structured outline",
			text: `[
				{"heading": "Intro", "subheadings": ["A", "B"], "key_points": ["p1"]},
				{"heading": "Top Picks"}
			]`,
			validate: func(t *testing.T, sections []types.Section) {
				require.Len(t, sections, 2)
				assert.Equal(t, "Intro", sections[0].Heading)
				assert.Equal(t, []string{"A", "B"}, sections[0].Subheadings)
			},
		},
		{
			name:      "not JSON",
			text:      "Intro\nTop Picks\n",
			wantError: true,
		},
		{
			name:      "section with empty heading",
			text:      `[{"heading": "  "}]`,
			wantError: true,
		},
		{
			name:      "object instead of array",
			text:      `{"heading": "Intro"}`,
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections, err := ParseOutline(tt.text)
			if tt.wantError {
				var oe *OutlineError
				require.Error(t, err)
				assert.True(t, errors.As(err, &oe), "expected *OutlineError, got %T", err)
				return
			}
			require.NoError(t, err)
			if tt.validate != nil {
				tt.validate(t, sections)
			}
		})
	}
}

func TestOutlineText_RoundTrips(t *testing.T) {
	sections := []types.Section{
		{Heading: "Why It Matters", Subheadings: []string{"Cost"}, KeyPoints: []string{"value"}},
	}
	parsed, err := ParseOutline(OutlineText(sections))
	require.NoError(t, err)
	assert.Equal(t, sections, parsed)
}

func TestSplitList(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "comma separated with spaces",
			input:    "Phones, Reviews ,Tech",
			expected: []string{"Phones", "Reviews", "Tech"},
		},
		{
			name:     "trailing comma dropped",
			input:    "budget, android,",
			expected: []string{"budget", "android"},
		},
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "only commas",
			input:    ", ,",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SplitList(tt.input))
		})
	}
}

func TestRefine(t *testing.T) {
	article := &types.Article{
		Topic:   "Best Budget Smartphones 2025",
		Keyword: "budget smartphones",
		Content: "<p>already drafted</p>",
	}

	req := &types.RefineRequest{
		Title:           "Best Budget Smartphones 2025: Our Picks",
		MetaDescription: "Hands-on picks for 2025.",
		Slug:            "best-budget-smartphones-2025",
		FocusKeyphrase:  "budget smartphones",
		OutlineJSON:     `[{"heading": "Top Picks"}]`,
		Categories:      "Phones, Reviews",
		Tags:            "budget, android",
	}

	require.NoError(t, Refine(article, req))

	assert.Equal(t, "Best Budget Smartphones 2025: Our Picks", article.Title)
	assert.Equal(t, []string{"Phones", "Reviews"}, article.Categories)
	assert.Equal(t, []string{"budget", "android"}, article.Tags)
	require.Len(t, article.Outline, 1)
	assert.Equal(t, "Top Picks", article.Outline[0].Heading)

	// Fields from earlier stages survive the refine
	assert.Equal(t, "Best Budget Smartphones 2025", article.Topic)
	assert.Equal(t, "<p>already drafted</p>", article.Content)
}

func TestRefine_BadOutlineBlocksWithoutDataLoss(t *testing.T) {
	article := &types.Article{Title: "Original Title", Categories: []string{"Phones"}}

	req := &types.RefineRequest{
		Title:           "New Title",
		MetaDescription: "m",
		Slug:            "s",
		FocusKeyphrase:  "k",
		OutlineJSON:     "not valid json",
		Categories:      "Other",
	}

	err := Refine(article, req)
	require.Error(t, err)

	// Nothing was written on the failed transition
	assert.Equal(t, "Original Title", article.Title)
	assert.Equal(t, []string{"Phones"}, article.Categories)
}
