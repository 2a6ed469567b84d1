package publish

import (
	"fmt"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// BuildFigure renders the WordPress block-editor markup for an inline image.
// Caption is optional.
func BuildFigure(srcURL, altText, caption string) string {
	var b strings.Builder
	b.WriteString(`<figure class="wp-block-image">`)
	fmt.Fprintf(&b, `<img src="%s" alt="%s"/>`, html.EscapeString(srcURL), html.EscapeString(altText))
	if caption != "" {
		fmt.Fprintf(&b, `<figcaption>%s</figcaption>`, html.EscapeString(caption))
	}
	b.WriteString(`</figure>`)
	return b.String()
}

// SpliceFigure inserts figureHTML immediately after the first H2 whose text
// contains heading, compared case-insensitively. The second return reports
// whether a matching heading was found; when false the content is returned
// unchanged.
func SpliceFigure(content, heading, figureHTML string) (string, bool, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content, false, fmt.Errorf("failed to parse article content: %w", err)
	}

	want := strings.ToLower(strings.TrimSpace(heading))
	matched := false
	doc.Find("h2").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if strings.Contains(strings.ToLower(strings.TrimSpace(s.Text())), want) {
			s.AfterHtml(figureHTML)
			matched = true
			return false
		}
		return true
	})
	if !matched {
		return content, false, nil
	}

	out, err := doc.Find("body").Html()
	if err != nil {
		return content, false, fmt.Errorf("failed to render spliced content: %w", err)
	}
	return out, true, nil
}
