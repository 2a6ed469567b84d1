// Package strategy generates and refines the SEO strategy for an article:
// title, meta description, slug, focus keyphrase, outline, and suggested
// taxonomy terms.
package strategy

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/asimons81/guide-generator/internal/llm"
	"github.com/asimons81/guide-generator/internal/prompts"
	"github.com/asimons81/guide-generator/internal/schemas"
	"github.com/asimons81/guide-generator/internal/types"
)

// Generate asks the generation service for an SEO strategy matching the
// stage-1 inputs. The response is free text; the first balanced JSON object
// is extracted, schema-validated, and decoded. A ParseError carries the raw
// response for inspection when extraction or decoding fails.
func Generate(ctx context.Context, client llm.Client, req *types.StrategyRequest) (*types.SEOStrategy, error) {
	prompt := buildStrategyPrompt(req)

	response, err := client.GenerateContent(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &GenerationError{Message: "SEO strategy request failed", Cause: err}
	}

	return parseStrategyResponse(response)
}

// buildStrategyPrompt fills the embedded strategy template with the request fields
func buildStrategyPrompt(req *types.StrategyRequest) string {
	template := prompts.MustGet("strategy.json", "seo-strategy")
	return prompts.Format(template, map[string]string{
		"Topic":     req.Topic,
		"Keyword":   req.Keyword,
		"Tone":      req.Tone,
		"WordCount": strconv.Itoa(req.WordCount),
	})
}

// parseStrategyResponse extracts, validates, and decodes the strategy JSON
func parseStrategyResponse(response string) (*types.SEOStrategy, error) {
	cleaned := llm.CleanJSONBlock(response)

	raw, err := llm.ExtractJSONObject(cleaned)
	if err != nil {
		return nil, &ParseError{Message: "no JSON object in response", Raw: response, Cause: err}
	}

	if err := schemas.Validate(schemas.SEOStrategySchema, []byte(raw)); err != nil {
		return nil, &ParseError{Message: "strategy does not match expected shape", Raw: response, Cause: err}
	}

	var strat types.SEOStrategy
	if err := json.Unmarshal([]byte(raw), &strat); err != nil {
		return nil, &ParseError{Message: "failed to decode strategy JSON", Raw: response, Cause: err}
	}

	return &strat, nil
}

// Apply merges a generated strategy and the stage-1 inputs into the article
// record. Suggested categories and tags seed the editable taxonomy fields.
func Apply(a *types.Article, req *types.StrategyRequest, strat *types.SEOStrategy) {
	a.Topic = req.Topic
	a.Keyword = req.Keyword
	a.Tone = req.Tone
	a.WordCount = req.WordCount

	a.Title = strat.Title
	a.MetaDescription = strat.MetaDescription
	a.Slug = strat.Slug
	a.FocusKeyphrase = strat.FocusKeyphrase
	a.Outline = strat.Outline
	a.Categories = strat.SuggestedCategories
	a.Tags = strat.SuggestedTags
	a.InternalLinks = strat.InternalLinkingIdeas
}
