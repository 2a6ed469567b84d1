package imageplan

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asimons81/guide-generator/internal/llm"
	"github.com/asimons81/guide-generator/internal/types"
)

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

const validPlanJSON = `{
	"images": [
		{
			"position": "featured",
			"placement_description": "Featured image at top of article",
			"prompt": "A photorealistic lineup of five budget smartphones on a wooden desk, soft morning light.",
			"alt_text": "best budget smartphones 2025 lineup",
			"caption": "Our 2025 picks"
		},
		{
			"position": "after_section",
			"section_heading": "Top 5 Budget Phones",
			"placement_description": "Breaks up the rankings section",
			"prompt": "A hand holding a budget smartphone showing its camera app, shallow depth of field.",
			"alt_text": "budget smartphone camera test",
			"caption": ""
		}
	]
}`

func planArticle() *types.Article {
	return &types.Article{
		Title:   "Best Budget Smartphones 2025: Top 10 Picks",
		Keyword: "budget smartphones",
		Content: "<p>Intro about budget smartphones.</p>\n<h2>Why They Matter</h2>\n<p>Because value.</p>\n<h2>Top 5 Budget Phones</h2>\n<p>Rankings here.</p>",
	}
}

func TestGenerate(t *testing.T) {
	tests := []struct {
		name      string
		response  string
		callErr   error
		wantError any
		validate  func(*testing.T, *types.ImagePlan)
	}{
		{
			name:     "valid plan in prose",
			response: "Here is the plan:\n" + validPlanJSON,
			validate: func(t *testing.T, plan *types.ImagePlan) {
				require.Len(t, plan.Images, 2)
				assert.Equal(t, types.PositionFeatured, plan.Images[0].Position)
				assert.Equal(t, "Top 5 Budget Phones", plan.Images[1].SectionHeading)
			},
		},
		{
			name:     "fenced plan",
			response: "```json\n" + validPlanJSON + "\n```",
			validate: func(t *testing.T, plan *types.ImagePlan) {
				assert.Equal(t, 2, plan.Count())
			},
		},
		{
			name:      "no JSON at all",
			response:  "I need the article content first.",
			wantError: &ParseError{},
		},
		{
			name:      "bad position value rejected by schema",
			response:  `{"images": [{"position": "sidebar", "prompt": "p", "alt_text": "a"}]}`,
			wantError: &ParseError{},
		},
		{
			name:      "service failure",
			callErr:   errors.New("connection reset"),
			wantError: &GenerationError{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &fakeClient{response: tt.response, err: tt.callErr}
			plan, err := Generate(context.Background(), client, planArticle())

			switch tt.wantError.(type) {
			case *ParseError:
				var pe *ParseError
				require.Error(t, err)
				require.True(t, errors.As(err, &pe), "expected *ParseError, got %T", err)
				assert.Equal(t, tt.response, pe.Raw)
				assert.Nil(t, plan)
			case *GenerationError:
				var ge *GenerationError
				require.Error(t, err)
				assert.True(t, errors.As(err, &ge))
			default:
				require.NoError(t, err)
				require.NotNil(t, plan)
				if tt.validate != nil {
					tt.validate(t, plan)
				}
			}
		})
	}
}

func TestGenerate_PromptTruncatesContent(t *testing.T) {
	article := planArticle()
	article.Content = "<p>" + strings.Repeat("budget smartphones are great. ", 200) + "</p>" // well over 2000 chars

	client := &fakeClient{response: validPlanJSON}
	_, err := Generate(context.Background(), client, article)
	require.NoError(t, err)

	require.Len(t, client.prompts, 1)
	prompt := client.prompts[0]
	assert.Contains(t, prompt, "truncated for brevity")
	// The full 6000-char body must not appear in the prompt
	assert.NotContains(t, prompt, article.Content)
}

func TestGenerate_PromptListsHeadings(t *testing.T) {
	client := &fakeClient{response: validPlanJSON}
	_, err := Generate(context.Background(), client, planArticle())
	require.NoError(t, err)

	prompt := client.prompts[0]
	assert.Contains(t, prompt, "- Why They Matter")
	assert.Contains(t, prompt, "- Top 5 Budget Phones")
}

func TestHeadings(t *testing.T) {
	tests := []struct {
		name     string
		content  string
		expected []string
	}{
		{
			name:     "plain headings",
			content:  "<h2>First</h2><p>x</p><h2>Second</h2>",
			expected: []string{"First", "Second"},
		},
		{
			name:     "heading with inline markup",
			content:  "<h2>Top <strong>5</strong> Phones</h2>",
			expected: []string{"Top 5 Phones"},
		},
		{
			name:     "no headings",
			content:  "<p>just text</p>",
			expected: nil,
		},
		{
			name:     "h3 not included",
			content:  "<h2>Main</h2><h3>Sub</h3>",
			expected: []string{"Main"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Headings(tt.content))
		})
	}
}

func TestDuplicateHeadings(t *testing.T) {
	content := "<h2>Overview</h2><h2>Specs</h2><h2>overview</h2>"
	assert.Equal(t, []string{"Overview"}, DuplicateHeadings(content))

	assert.Nil(t, DuplicateHeadings("<h2>Only One</h2>"))
}

func TestDuplicateHeadings_FirstOccurrenceCasing(t *testing.T) {
	// a heading repeated three times with varying casing is reported once,
	// with the casing of the occurrence an image lands after
	content := "<h2>Top Picks</h2><h2>TOP PICKS</h2><h2>top picks</h2><h2>Specs</h2><h2>specs</h2>"
	assert.Equal(t, []string{"Top Picks", "Specs"}, DuplicateHeadings(content))
}

func TestPromptListing(t *testing.T) {
	plan := &types.ImagePlan{Images: []types.ImageDescriptor{
		{Prompt: "First prompt"},
		{Prompt: "Second prompt"},
	}}

	listing := PromptListing(plan)
	assert.Equal(t, "Image 1: First prompt\nImage 2: Second prompt\n", listing)

	assert.Empty(t, PromptListing(nil))
	assert.Empty(t, PromptListing(&types.ImagePlan{}))
}
