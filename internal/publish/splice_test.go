package publish

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildFigure(t *testing.T) {
	got := BuildFigure("https://example.com/a.jpg", `A phone on a desk`, "Our top pick")
	assert.Equal(t, `<figure class="wp-block-image"><img src="https://example.com/a.jpg" alt="A phone on a desk"/><figcaption>Our top pick</figcaption></figure>`, got)
}

func TestBuildFigure_NoCaption(t *testing.T) {
	got := BuildFigure("https://example.com/a.jpg", "alt", "")
	assert.NotContains(t, got, "figcaption")
}

func TestBuildFigure_EscapesAttributes(t *testing.T) {
	got := BuildFigure("https://example.com/a.jpg", `"quoted" & <tagged>`, "")
	assert.NotContains(t, got, `alt=""quoted"`)
	assert.Contains(t, got, "&amp;")
}

func TestSpliceFigure(t *testing.T) {
	content := `<h2>Why It Matters</h2><p>First.</p><h2>Top Picks</h2><p>Second.</p>`
	figure := `<figure class="wp-block-image"><img src="x.jpg" alt="a"/></figure>`

	got, matched, err := SpliceFigure(content, "Top Picks", figure)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Contains(t, got, `<h2>Top Picks</h2><figure class="wp-block-image">`)
	assert.Contains(t, got, `<p>Second.</p>`)
}

func TestSpliceFigure_CaseInsensitiveSubstring(t *testing.T) {
	content := `<h2>Our TOP PICKS for 2025</h2><p>Body.</p>`
	figure := `<figure class="wp-block-image"><img src="x.jpg" alt="a"/></figure>`

	got, matched, err := SpliceFigure(content, "top picks", figure)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Contains(t, got, `</h2><figure`)
}

func TestSpliceFigure_FirstMatchOnly(t *testing.T) {
	content := `<h2>Setup</h2><p>One.</p><h2>Setup</h2><p>Two.</p>`
	figure := `<figure class="wp-block-image"><img src="x.jpg" alt="a"/></figure>`

	got, matched, err := SpliceFigure(content, "Setup", figure)
	require.NoError(t, err)
	assert.True(t, matched)
	assert.Contains(t, got, `<h2>Setup</h2><figure class="wp-block-image"><img src="x.jpg" alt="a"/></figure><p>One.</p>`)
	assert.Contains(t, got, `<h2>Setup</h2><p>Two.</p>`)
}

func TestSpliceFigure_NoMatch(t *testing.T) {
	content := `<h2>Intro</h2><p>Body.</p>`

	got, matched, err := SpliceFigure(content, "Conclusion", "<figure></figure>")
	require.NoError(t, err)
	assert.False(t, matched)
	assert.Equal(t, content, got)
}
