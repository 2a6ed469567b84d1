package imageplan

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Headings returns the inner text of every H2 element in the article body,
// in document order. The planning prompt lists these so the model names real
// sections, and the publish stage warns when two sections share a heading.
func Headings(content string) []string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil
	}

	var headings []string
	doc.Find("h2").Each(func(_ int, s *goquery.Selection) {
		text := strings.TrimSpace(s.Text())
		if text != "" {
			headings = append(headings, text)
		}
	})
	return headings
}

// DuplicateHeadings returns heading texts that appear more than once,
// compared case-insensitively. Each duplicate is reported once, with the
// casing of its first occurrence, since that is the occurrence the publish
// stage splices after.
func DuplicateHeadings(content string) []string {
	counts := make(map[string]int)
	firsts := make(map[string]string)
	var order []string
	for _, h := range Headings(content) {
		key := strings.ToLower(h)
		counts[key]++
		if counts[key] == 1 {
			firsts[key] = h
		}
		if counts[key] == 2 {
			order = append(order, firsts[key])
		}
	}
	return order
}
