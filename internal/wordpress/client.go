// Package wordpress is a minimal client for the WordPress REST API surface
// the publish stage needs: media upload, alt-text updates, taxonomy listing,
// and draft post creation.
package wordpress

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout is the HTTP timeout for WordPress calls. Media uploads can
// be slow on shared hosting, so it is generous.
const DefaultTimeout = 60 * time.Second

// listPageSize matches the WordPress maximum per_page for taxonomy listings.
const listPageSize = 100

// Client talks to one WordPress site using application-password basic auth.
type Client struct {
	baseURL     string
	username    string
	appPassword string
	http        *http.Client
}

// New creates a Client for the given site. baseURL is the site root
// (e.g. https://example.com); the REST prefix is appended internally.
func New(baseURL, username, appPassword string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}
	return &Client{
		baseURL:     strings.TrimSuffix(baseURL, "/"),
		username:    username,
		appPassword: appPassword,
		http:        httpClient,
	}
}

// Media is a created media library item.
type Media struct {
	ID        int    `json:"id"`
	SourceURL string `json:"source_url"`
}

// RenderedField is WordPress's {"rendered": "..."} wrapper.
type RenderedField struct {
	Rendered string `json:"rendered"`
}

// Post is a created post.
type Post struct {
	ID     int           `json:"id"`
	Title  RenderedField `json:"title"`
	Status string        `json:"status"`
	Link   string        `json:"link"`
}

// PostInput is the payload for creating a draft post.
type PostInput struct {
	Title           string
	Content         string
	Slug            string
	MetaDescription string
	CategoryIDs     []int
	TagIDs          []int
	FeaturedMediaID int
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + "/wp-json/wp/v2" + path
}

// UploadMedia posts raw encoded image bytes to the media library. WordPress
// derives the attachment name from the Content-Disposition filename.
func (c *Client) UploadMedia(ctx context.Context, data []byte, filename, contentType string) (*Media, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/media"), bytes.NewReader(data))
	if err != nil {
		return nil, &RequestError{Op: OpUploadMedia, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	req.Header.Set("Content-Type", contentType)
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: OpUploadMedia, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return nil, &RequestError{Op: OpUploadMedia, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var media Media
	if err := json.Unmarshal(body, &media); err != nil {
		return nil, &RequestError{Op: OpUploadMedia, Message: "malformed response body", Cause: err}
	}
	return &media, nil
}

// SetAltText updates a media item's alt text. The original tool fired and
// forgot this call; failures are returned so the publish report can surface
// them.
func (c *Client) SetAltText(ctx context.Context, mediaID int, altText string) error {
	payload, err := json.Marshal(map[string]string{"alt_text": altText})
	if err != nil {
		return &RequestError{Op: OpSetAltText, Message: "failed to encode payload", Cause: err}
	}

	url := fmt.Sprintf("%s/%d", c.endpoint("/media"), mediaID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return &RequestError{Op: OpSetAltText, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return &RequestError{Op: OpSetAltText, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return &RequestError{Op: OpSetAltText, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return nil
}

// Categories returns a name → id mapping of existing categories. Any failure
// yields an empty map: publish-time resolution simply drops unmatched names.
func (c *Client) Categories(ctx context.Context) map[string]int {
	return c.listTerms(ctx, "/categories")
}

// Tags returns a name → id mapping of existing tags. Any failure yields an
// empty map.
func (c *Client) Tags(ctx context.Context) map[string]int {
	return c.listTerms(ctx, "/tags")
}

type term struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *Client) listTerms(ctx context.Context, path string) map[string]int {
	terms := make(map[string]int)

	url := fmt.Sprintf("%s?per_page=%d", c.endpoint(path), listPageSize)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return terms
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return terms
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return terms
	}

	var decoded []term
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return terms
	}
	for _, t := range decoded {
		terms[t.Name] = t.ID
	}
	return terms
}

// CreatePost creates a post in draft status. Posts are never published
// automatically; a human reviews the draft in WordPress.
func (c *Client) CreatePost(ctx context.Context, input *PostInput) (*Post, error) {
	payload, err := json.Marshal(map[string]any{
		"title":   input.Title,
		"content": input.Content,
		"status":  "draft",
		"slug":    input.Slug,
		"meta": map[string]string{
			"description": input.MetaDescription,
		},
		"categories":     input.CategoryIDs,
		"tags":           input.TagIDs,
		"featured_media": input.FeaturedMediaID,
	})
	if err != nil {
		return nil, &RequestError{Op: OpCreatePost, Message: "failed to encode payload", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/posts"), bytes.NewReader(payload))
	if err != nil {
		return nil, &RequestError{Op: OpCreatePost, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.username, c.appPassword)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &RequestError{Op: OpCreatePost, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusCreated {
		return nil, &RequestError{Op: OpCreatePost, StatusCode: resp.StatusCode, Body: string(body)}
	}

	var post Post
	if err := json.Unmarshal(body, &post); err != nil {
		return nil, &RequestError{Op: OpCreatePost, Message: "malformed response body", Cause: err}
	}
	return &post, nil
}
