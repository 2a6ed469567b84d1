package drafting

import (
	"strings"

	"github.com/asimons81/guide-generator/internal/types"
)

// Title and meta-description length targets for search result display
const (
	TitleMinLen = 50
	TitleMaxLen = 60
	MetaMinLen  = 150
	MetaMaxLen  = 156
)

// contentKeywordWindow is how far into the content the keyword must appear
// for the "keyword in first paragraph" check.
const contentKeywordWindow = 500

// minLengthRatio is the fraction of the target word count the draft must
// reach for the length check to pass.
const minLengthRatio = 0.8

// Check is one advisory checklist item: a named boolean predicate over the
// current article state.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// Checklist computes the fixed SEO checklist for the article's current state.
// The checklist is advisory only; it never blocks stage advancement.
func Checklist(a *types.Article) []Check {
	content := a.Content
	keyword := strings.ToLower(a.Keyword)

	window := content
	if len(window) > contentKeywordWindow {
		window = window[:contentKeywordWindow]
	}

	return []Check{
		{
			Name:   "Keyword in title",
			Passed: strings.Contains(strings.ToLower(a.Title), keyword),
		},
		{
			Name:   "Keyword in meta description",
			Passed: strings.Contains(strings.ToLower(a.MetaDescription), keyword),
		},
		{
			Name:   "Keyword in first paragraph",
			Passed: strings.Contains(strings.ToLower(window), keyword),
		},
		{
			Name:   "Title length (50-60 chars)",
			Passed: len(a.Title) >= TitleMinLen && len(a.Title) <= TitleMaxLen,
		},
		{
			Name:   "Meta description length (150-156 chars)",
			Passed: len(a.MetaDescription) >= MetaMinLen && len(a.MetaDescription) <= MetaMaxLen,
		},
		{
			Name:   "Has H2 headings",
			Passed: strings.Contains(content, "<h2>"),
		},
		{
			Name:   "Has H3 subheadings",
			Passed: strings.Contains(content, "<h3>"),
		},
		{
			Name:   "Content length appropriate",
			Passed: float64(len(strings.Fields(content))) >= float64(a.WordCount)*minLengthRatio,
		},
	}
}
