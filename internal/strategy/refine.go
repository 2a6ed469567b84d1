package strategy

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asimons81/guide-generator/internal/types"
)

// ParseOutline decodes a user-edited outline back into structured sections.
// The refine stage presents the outline as editable JSON text; an edit that
// no longer parses blocks the transition rather than losing data.
func ParseOutline(text string) ([]types.Section, error) {
	var sections []types.Section
	if err := json.Unmarshal([]byte(text), &sections); err != nil {
		return nil, &OutlineError{Message: "outline is not valid JSON", Cause: err}
	}
	for i, s := range sections {
		if strings.TrimSpace(s.Heading) == "" {
			return nil, &OutlineError{Message: fmt.Sprintf("section %d has an empty heading", i+1)}
		}
	}
	return sections, nil
}

// OutlineText serializes an outline for editing, matching the format
// ParseOutline accepts.
func OutlineText(sections []types.Section) string {
	data, err := json.MarshalIndent(sections, "", "  ")
	if err != nil {
		return "[]"
	}
	return string(data)
}

// SplitList splits a comma-separated field into trimmed entries, dropping
// empties left behind by trailing commas.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// Refine writes the reviewed stage-2 fields back into the article. The edited
// outline must re-parse; categories and tags are comma-split with whitespace
// trimmed.
func Refine(a *types.Article, req *types.RefineRequest) error {
	sections, err := ParseOutline(req.OutlineJSON)
	if err != nil {
		return err
	}

	a.Title = req.Title
	a.MetaDescription = req.MetaDescription
	a.Slug = req.Slug
	a.FocusKeyphrase = req.FocusKeyphrase
	a.Outline = sections
	a.Categories = SplitList(req.Categories)
	a.Tags = SplitList(req.Tags)
	return nil
}
