package types

import (
	"github.com/go-playground/validator/v10"
)

// StrategyRequest is the stage-1 submission: the inputs from which an SEO
// strategy is generated.
type StrategyRequest struct {
	Topic     string `json:"topic" validate:"required,min=1"`
	Keyword   string `json:"keyword" validate:"required,min=1"`
	Tone      string `json:"tone" validate:"required,oneof=Professional Casual Enthusiastic Technical Conversational"`
	WordCount int    `json:"word_count" validate:"required,min=800,max=3000"`
}

// RefineRequest is the stage-2 submission: the reviewed strategy fields
// written back into the article. OutlineJSON carries the user-edited outline
// as structured text; Categories and Tags are comma-separated strings.
type RefineRequest struct {
	Title           string `json:"title" validate:"required,max=60"`
	MetaDescription string `json:"meta_description" validate:"required,max=156"`
	Slug            string `json:"slug" validate:"required"`
	FocusKeyphrase  string `json:"focus_keyphrase" validate:"required"`
	OutlineJSON     string `json:"outline" validate:"required"`
	Categories      string `json:"categories"`
	Tags            string `json:"tags"`
}

// Validate validates the StrategyRequest using the validator.
func (r *StrategyRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the RefineRequest using the validator.
func (r *RefineRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
