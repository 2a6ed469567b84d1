// Package imageplan asks the generation service where images belong in a
// drafted article and what to generate for each slot.
package imageplan

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asimons81/guide-generator/internal/llm"
	"github.com/asimons81/guide-generator/internal/prompts"
	"github.com/asimons81/guide-generator/internal/schemas"
	"github.com/asimons81/guide-generator/internal/types"
)

// contentPreviewLimit bounds how much article content is embedded in the
// planning prompt.
const contentPreviewLimit = 2000

// GenerationError represents a failed image-plan generation call
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image plan generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("image plan generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// ParseError represents a malformed image-plan response. Raw carries the
// full response text for inspection.
type ParseError struct {
	Message string
	Raw     string
	Cause   error
}

func (e *ParseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("image plan parse error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("image plan parse error: %s", e.Message)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// Generate requests an image plan for the drafted article: one featured image
// plus in-content images placed after specific H2 sections. Content is
// truncated before prompting to bound request size. The caller only invokes
// this when the article has no plan yet; re-entry after a failure retries
// naturally.
func Generate(ctx context.Context, client llm.Client, a *types.Article) (*types.ImagePlan, error) {
	prompt := buildPlanPrompt(a)

	response, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Message: "image plan request failed", Cause: err}
	}

	return parsePlanResponse(response)
}

// buildPlanPrompt fills the embedded planning template with the draft preview
// and the article's actual H2 inventory.
func buildPlanPrompt(a *types.Article) string {
	preview := a.Content
	if len(preview) > contentPreviewLimit {
		preview = preview[:contentPreviewLimit]
	}

	headings := Headings(a.Content)
	listing := "(none found)"
	if len(headings) > 0 {
		listing = "- " + strings.Join(headings, "\n- ")
	}

	template := prompts.MustGet("images.json", "image-plan")
	return prompts.Format(template, map[string]string{
		"Title":          a.Title,
		"Keyword":        a.Keyword,
		"ContentPreview": preview,
		"Headings":       listing,
	})
}

// parsePlanResponse extracts, validates, and decodes the image plan JSON
func parsePlanResponse(response string) (*types.ImagePlan, error) {
	cleaned := llm.CleanJSONBlock(response)

	raw, err := llm.ExtractJSONObject(cleaned)
	if err != nil {
		return nil, &ParseError{Message: "no JSON object in response", Raw: response, Cause: err}
	}

	if err := schemas.Validate(schemas.ImagePlanSchema, []byte(raw)); err != nil {
		return nil, &ParseError{Message: "plan does not match expected shape", Raw: response, Cause: err}
	}

	var plan types.ImagePlan
	if err := json.Unmarshal([]byte(raw), &plan); err != nil {
		return nil, &ParseError{Message: "failed to decode plan JSON", Raw: response, Cause: err}
	}

	return &plan, nil
}

// PromptListing renders a copy-ready listing of just the generation prompts,
// for pasting into an external image tool.
func PromptListing(plan *types.ImagePlan) string {
	if plan == nil || len(plan.Images) == 0 {
		return ""
	}

	var sb strings.Builder
	for i, img := range plan.Images {
		sb.WriteString(fmt.Sprintf("Image %d: %s\n", i+1, img.Prompt))
	}
	return sb.String()
}
