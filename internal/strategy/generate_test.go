package strategy

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asimons81/guide-generator/internal/llm"
	"github.com/asimons81/guide-generator/internal/types"
)

// fakeClient returns a canned response or error for every call
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateContent(_ context.Context, prompt string, _ llm.ModelTier) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake" }
func (f *fakeClient) Close() error                  { return nil }

const validStrategyJSON = `{
	"title": "Best Budget Smartphones 2025: Top 10 Picks",
	"meta_description": "Discover the best budget smartphones of 2025. Compare specs, cameras, and battery life to find your perfect phone. Read our full guide now!",
	"slug": "best-budget-smartphones-2025",
	"focus_keyphrase": "budget smartphones",
	"outline": [
		{
			"heading": "Why Budget Smartphones Are Better Than Ever",
			"subheadings": ["Hardware improvements", "Software support"],
			"key_points": ["price-to-performance", "camera quality"]
		},
		{
			"heading": "Top 5 Budget Phones",
			"subheadings": ["Under $200", "Under $300"],
			"key_points": ["rankings", "specs"]
		}
	],
	"suggested_categories": ["Phones", "Reviews"],
	"suggested_tags": ["budget", "android", "smartphones"],
	"internal_linking_opportunities": ["best phone cases", "smartphone photography tips"]
}`

func testRequest() *types.StrategyRequest {
	return &types.StrategyRequest{
		Topic:     "Best Budget Smartphones 2025",
		Keyword:   "budget smartphones",
		Tone:      types.ToneCasual,
		WordCount: 1500,
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		callErr   error
		wantError any
		validate  func(*testing.T, *types.SEOStrategy)
	}{
		{
			name:     "pure JSON response",
			response: validStrategyJSON,
			validate: func(t *testing.T, s *types.SEOStrategy) {
				assert.Equal(t, "Best Budget Smartphones 2025: Top 10 Picks", s.Title)
				assert.Equal(t, "best-budget-smartphones-2025", s.Slug)
				assert.Len(t, s.Outline, 2)
				assert.Equal(t, []string{"Phones", "Reviews"}, s.SuggestedCategories)
				assert.Len(t, s.InternalLinkingIdeas, 2)
			},
		},
		{
			name:     "JSON embedded in prose",
			response: "Here's a great strategy for your article:\n\n" + validStrategyJSON + "\n\nGood luck with the post!",
			validate: func(t *testing.T, s *types.SEOStrategy) {
				assert.Equal(t, "budget smartphones", s.FocusKeyphrase)
			},
		},
		{
			name:     "JSON wrapped in markdown fence",
			response: "```json\n" + validStrategyJSON + "\n```",
			validate: func(t *testing.T, s *types.SEOStrategy) {
				assert.Len(t, s.Outline, 2)
			},
		},
		{
			name:      "no braces at all",
			response:  "Sorry, I cannot help with that topic.",
			wantError: &ParseError{},
		},
		{
			name:      "object missing required fields",
			response:  `{"title": "Only a title"}`,
			wantError: &ParseError{},
		},
		{
			name:      "service call failure",
			callErr:   errors.New("quota exceeded"),
			wantError: &GenerationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.callErr}
			strat, err := Generate(context.Background(), client, testRequest())

			switch tt.wantError.(type) {
			case *ParseError:
				var pe *ParseError
				require.Error(t, err)
				require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
				// Raw response travels with the error for manual inspection
				assert.Equal(t, tt.response, pe.Raw)
				assert.Nil(t, strat)
			case *GenerationError:
				var ge *GenerationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &ge), "expected *GenerationError, got %T", err)
				assert.Nil(t, strat)
			default:
				require.NoError(t, err)
				require.NotNil(t, strat)
				if tt.validate != nil {
					tt.validate(t, strat)
				}
			}
		})
	}
}

func TestGenerate_PromptCarriesInputs(t *testing.T) {
	client := &fakeClient{response: validStrategyJSON}
	_, err := Generate(context.Background(), client, testRequest())
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "Best Budget Smartphones 2025")
	assert.Contains(t, prompt, "budget smartphones")
	assert.Contains(t, prompt, "Casual")
	assert.Contains(t, prompt, "1500")
	assert.NotContains(t, prompt, "{{.")
}

func TestApply_MergesStrategyAndInputs(t *testing.T) {
	client := &fakeClient{response: validStrategyJSON}
	req := testRequest()
	strat, err := Generate(context.Background(), client, req)
	require.NoError(t, err)

	var article types.Article
	Apply(&article, req, strat)

	assert.Equal(t, req.Topic, article.Topic)
	assert.Equal(t, req.Keyword, article.Keyword)
	assert.Equal(t, req.Tone, article.Tone)
	assert.Equal(t, req.WordCount, article.WordCount)
	assert.Equal(t, strat.Title, article.Title)
	assert.Equal(t, strat.Outline, article.Outline)
	assert.Equal(t, strat.SuggestedTags, article.Tags)
}
