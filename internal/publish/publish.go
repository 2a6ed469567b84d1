// Package publish drives the final pipeline stage: it pushes approved images
// into the WordPress media library, splices them into the article body, and
// creates the post as a draft.
package publish

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/asimons81/guide-generator/internal/imageplan"
	"github.com/asimons81/guide-generator/internal/images"
	"github.com/asimons81/guide-generator/internal/types"
	"github.com/asimons81/guide-generator/internal/wordpress"
)

// CMS is the slice of the WordPress client the publisher needs.
type CMS interface {
	UploadMedia(ctx context.Context, data []byte, filename, contentType string) (*wordpress.Media, error)
	SetAltText(ctx context.Context, mediaID int, altText string) error
	Categories(ctx context.Context) map[string]int
	Tags(ctx context.Context) map[string]int
	CreatePost(ctx context.Context, input *wordpress.PostInput) (*wordpress.Post, error)
}

// Error wraps a failure that stops the publish run outright.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("publish failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("publish failed: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Publisher runs the publish stage against one CMS.
type Publisher struct {
	cms CMS
	now func() time.Time
}

// New creates a Publisher. now may be nil, in which case time.Now is used;
// it exists so tests can pin filename dates.
func New(cms CMS, now func() time.Time) *Publisher {
	if now == nil {
		now = time.Now
	}
	return &Publisher{cms: cms, now: now}
}

// Run publishes the article. Individual image failures are tolerated and
// recorded in the report; only post creation failure aborts the run. The
// article itself is never mutated, so a failed run can be retried.
func (p *Publisher) Run(ctx context.Context, a *types.Article, uploads []types.UploadedImage) (*Report, error) {
	if a.ImagePlan == nil || a.ImagePlan.Count() != len(uploads) {
		return nil, &Error{Message: fmt.Sprintf("image count mismatch: plan has %d, got %d uploads", a.ImagePlan.Count(), len(uploads))}
	}

	report := &Report{}

	for _, h := range imageplan.DuplicateHeadings(a.Content) {
		report.Warnings = append(report.Warnings, fmt.Sprintf("heading %q appears more than once; images are placed after its first occurrence", h))
	}

	now := p.now()
	for i, upload := range uploads {
		desc := a.ImagePlan.Images[i]
		result := MediaResult{Index: i}

		data, err := images.Convert(upload.Filename, upload.Data)
		if err != nil {
			result.Error = err.Error()
			report.Media = append(report.Media, result)
			continue
		}

		result.Filename = images.SEOFilename(desc.AltText, i+1, now)
		media, err := p.cms.UploadMedia(ctx, data, result.Filename, images.ContentType)
		if err != nil {
			result.Error = err.Error()
			report.Media = append(report.Media, result)
			continue
		}
		result.MediaID = media.ID
		result.SourceURL = media.SourceURL

		if err := p.cms.SetAltText(ctx, media.ID, desc.AltText); err != nil {
			report.Warnings = append(report.Warnings, fmt.Sprintf("alt text not set on media %d (%s): %v", media.ID, result.Filename, err))
		}

		if report.FeaturedMediaID == 0 {
			report.FeaturedMediaID = media.ID
		}
		report.Media = append(report.Media, result)
	}

	content := a.Content
	for i, result := range report.Media {
		if !result.Succeeded() || result.MediaID == report.FeaturedMediaID {
			continue
		}
		desc := a.ImagePlan.Images[i]
		if desc.SectionHeading == "" {
			continue
		}

		figure := BuildFigure(result.SourceURL, desc.AltText, desc.Caption)
		spliced, matched, err := SpliceFigure(content, desc.SectionHeading, figure)
		if err != nil {
			return nil, &Error{Message: "failed to place image in content", Cause: err}
		}
		if !matched {
			report.Warnings = append(report.Warnings, fmt.Sprintf("no H2 matching %q; image %s left out of the article body", desc.SectionHeading, result.Filename))
			continue
		}
		content = spliced
	}

	categoryIDs, droppedCats := resolveTerms(a.Categories, p.cms.Categories(ctx))
	tagIDs, droppedTags := resolveTerms(a.Tags, p.cms.Tags(ctx))
	report.DroppedCategories = droppedCats
	report.DroppedTags = droppedTags
	for _, name := range droppedCats {
		report.Warnings = append(report.Warnings, fmt.Sprintf("category %q does not exist on the site; dropped", name))
	}
	for _, name := range droppedTags {
		report.Warnings = append(report.Warnings, fmt.Sprintf("tag %q does not exist on the site; dropped", name))
	}

	post, err := p.cms.CreatePost(ctx, &wordpress.PostInput{
		Title:           a.Title,
		Content:         content,
		Slug:            a.Slug,
		MetaDescription: a.MetaDescription,
		CategoryIDs:     categoryIDs,
		TagIDs:          tagIDs,
		FeaturedMediaID: report.FeaturedMediaID,
	})
	if err != nil {
		return nil, &Error{Message: "failed to create draft post", Cause: err}
	}

	report.PostID = post.ID
	report.PostTitle = post.Title.Rendered
	report.PostStatus = post.Status
	report.PostLink = stripPreviewParam(post.Link)
	return report, nil
}

// resolveTerms maps names to site term ids by exact name. Names the site does
// not know are dropped, never created.
func resolveTerms(names []string, existing map[string]int) ([]int, []string) {
	var ids []int
	var dropped []string
	for _, name := range names {
		if id, ok := existing[name]; ok {
			ids = append(ids, id)
		} else {
			dropped = append(dropped, name)
		}
	}
	return ids, dropped
}

// stripPreviewParam removes the preview flag WordPress appends to draft
// links so the reported link opens the editor view cleanly.
func stripPreviewParam(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return link
	}
	q := u.Query()
	if q.Get("preview") == "" {
		return link
	}
	q.Del("preview")
	u.RawQuery = q.Encode()
	return u.String()
}
