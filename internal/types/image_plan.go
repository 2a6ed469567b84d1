package types

// Image descriptor positions
const (
	PositionFeatured     = "featured"
	PositionAfterSection = "after_section"
)

// ImagePlan is the ordered list of image descriptors produced at the image
// planning stage. By convention the featured descriptor occupies index 0;
// the pipeline assumes rather than enforces this, and at publish time the
// first successfully uploaded image becomes the featured image regardless.
type ImagePlan struct {
	Images []ImageDescriptor `json:"images"`
}

// ImageDescriptor describes one planned image: where it goes, what to
// generate, and its SEO metadata.
type ImageDescriptor struct {
	Position             string `json:"position"`
	SectionHeading       string `json:"section_heading,omitempty"`
	PlacementDescription string `json:"placement_description,omitempty"`
	Prompt               string `json:"prompt"`
	AltText              string `json:"alt_text"`
	Caption              string `json:"caption,omitempty"`
}

// Count returns the number of planned images, tolerating a nil plan.
func (p *ImagePlan) Count() int {
	if p == nil {
		return 0
	}
	return len(p.Images)
}
