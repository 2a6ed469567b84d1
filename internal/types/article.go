// Package types provides type definitions for structured data used throughout the guide-generator system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Tone values accepted for article generation
const (
	ToneProfessional   = "Professional"
	ToneCasual         = "Casual"
	ToneEnthusiastic   = "Enthusiastic"
	ToneTechnical      = "Technical"
	ToneConversational = "Conversational"
)

// Word count bounds for a generated article
const (
	MinWordCount = 800
	MaxWordCount = 3000
)

// Article is the accumulating record for one article as it moves through the
// production pipeline. Fields are additive: a later stage never clears a field
// written by an earlier one, only an explicit edit or a full reset does.
type Article struct {
	// Stage 1 input
	Topic     string `json:"topic"`
	Keyword   string `json:"keyword"`
	Tone      string `json:"tone"`
	WordCount int    `json:"word_count"`

	// Stage 1 output / stage 2 refinements
	Title           string    `json:"title"`
	MetaDescription string    `json:"meta_description"`
	Slug            string    `json:"slug"`
	FocusKeyphrase  string    `json:"focus_keyphrase"`
	Outline         []Section `json:"outline"`
	Categories      []string  `json:"categories"`
	Tags            []string  `json:"tags"`
	InternalLinks   []string  `json:"internal_links,omitempty"`

	// Stage 3 output
	Content string `json:"content,omitempty"`

	// Stage 4 output
	ImagePlan *ImagePlan `json:"image_plan,omitempty"`
}

// Section is one entry of the article outline. Heading uniqueness is not
// enforced; the publish stage inserts images after the first matching H2 only.
type Section struct {
	Heading     string   `json:"heading"`
	Subheadings []string `json:"subheadings,omitempty"`
	KeyPoints   []string `json:"key_points,omitempty"`
}

// SEOStrategy represents the structured strategy returned by the generation
// service for a topic/keyword pair.
type SEOStrategy struct {
	Title                string    `json:"title"`
	MetaDescription      string    `json:"meta_description"`
	Slug                 string    `json:"slug"`
	FocusKeyphrase       string    `json:"focus_keyphrase"`
	Outline              []Section `json:"outline"`
	SuggestedCategories  []string  `json:"suggested_categories"`
	SuggestedTags        []string  `json:"suggested_tags"`
	InternalLinkingIdeas []string  `json:"internal_linking_opportunities"`
}

// UploadedImage is one raw image payload attached at the upload stage.
// Order is significant: image i is paired with image-plan descriptor i.
type UploadedImage struct {
	Filename string `json:"filename"`
	Data     []byte `json:"data"`
}
