package images

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// filenameStemLimit caps the cleaned alt-text stem length.
const filenameStemLimit = 50

var (
	// letters and digits in any script survive; RE2's \w would strip
	// everything outside ASCII
	nonWordChars   = regexp.MustCompile(`[^\p{L}\p{N}\s_-]`)
	whitespaceRuns = regexp.MustCompile(`[-\s]+`)
)

// SEOFilename derives a filesystem-safe, keyword-bearing filename from an
// image's alt text: lowercased, stripped of punctuation, whitespace collapsed
// to hyphens, truncated, and suffixed with a date stamp and the 1-based image
// index.
func SEOFilename(altText string, index int, now time.Time) string {
	stem := strings.ToLower(altText)
	stem = nonWordChars.ReplaceAllString(stem, "")
	stem = whitespaceRuns.ReplaceAllString(stem, "-")
	if runes := []rune(stem); len(runes) > filenameStemLimit {
		stem = string(runes[:filenameStemLimit])
	}
	return fmt.Sprintf("%s-%s-%d.%s", stem, now.Format("20060102"), index, Ext)
}
