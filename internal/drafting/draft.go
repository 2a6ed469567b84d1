// Package drafting generates the article body from an accumulated SEO
// strategy and computes the advisory SEO checklist over the draft.
package drafting

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/asimons81/guide-generator/internal/llm"
	"github.com/asimons81/guide-generator/internal/prompts"
	"github.com/asimons81/guide-generator/internal/types"
)

// GenerationError represents a failed draft-generation call
type GenerationError struct {
	Message string
	Cause   error
}

func (e *GenerationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("draft generation failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("draft generation failed: %s", e.Message)
}

func (e *GenerationError) Unwrap() error {
	return e.Cause
}

// Generate produces semantic HTML body content for the article. The model
// commonly wraps its output in a fenced code block; the wrapping is stripped
// before the content is returned. The caller is responsible for only invoking
// this when the article has no content yet.
func Generate(ctx context.Context, client llm.Client, a *types.Article) (string, error) {
	prompt := buildDraftPrompt(a)

	response, err := client.GenerateContent(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return "", &GenerationError{Message: "article draft request failed", Cause: err}
	}

	return llm.StripCodeFences(response), nil
}

// buildDraftPrompt fills the embedded draft template with the accumulated strategy
func buildDraftPrompt(a *types.Article) string {
	outline, err := json.MarshalIndent(a.Outline, "", "  ")
	if err != nil {
		outline = []byte("[]")
	}

	template := prompts.MustGet("drafting.json", "article-draft")
	return prompts.Format(template, map[string]string{
		"Title":          a.Title,
		"Topic":          a.Topic,
		"Keyword":        a.Keyword,
		"FocusKeyphrase": a.FocusKeyphrase,
		"Tone":           a.Tone,
		"ToneLower":      strings.ToLower(a.Tone),
		"WordCount":      strconv.Itoa(a.WordCount),
		"Outline":        string(outline),
	})
}
