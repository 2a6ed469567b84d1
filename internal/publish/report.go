package publish

// MediaResult records the outcome for one image in the upload loop.
type MediaResult struct {
	Index     int    `json:"index"`
	Filename  string `json:"filename"`
	MediaID   int    `json:"media_id,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
	Error     string `json:"error,omitempty"`
}

// Succeeded reports whether the image made it into the media library.
func (r MediaResult) Succeeded() bool {
	return r.Error == "" && r.MediaID != 0
}

// Report summarizes a publish run. Warnings cover conditions that did not
// stop the run: alt-text failures, unmatched or duplicated headings, dropped
// taxonomy names.
type Report struct {
	PostID            int           `json:"post_id"`
	PostTitle         string        `json:"post_title"`
	PostStatus        string        `json:"post_status"`
	PostLink          string        `json:"post_link"`
	FeaturedMediaID   int           `json:"featured_media_id"`
	Media             []MediaResult `json:"media"`
	Warnings          []string      `json:"warnings,omitempty"`
	DroppedCategories []string      `json:"dropped_categories,omitempty"`
	DroppedTags       []string      `json:"dropped_tags,omitempty"`
}
