package textutil

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

var (
	markupRe = regexp.MustCompile(`<[^>]+>`)
	symbolRe = regexp.MustCompile(`[、。，・※★☆「」『』【】〈〉《》…—―,.!?:;()\[\]"'` + "`" + `\s]`)
)

// Normalize prepares text for comparison: markup tags are removed, NFKC
// folding maps full-width and half-width variants onto the same code points,
// punctuation and whitespace are stripped, and the result is lowercased.
func Normalize(text string) string {
	text = markupRe.ReplaceAllString(text, "")
	text = norm.NFKC.String(text)
	text = symbolRe.ReplaceAllString(text, "")
	return strings.ToLower(text)
}

// NormalizedSimilarity normalizes both inputs and returns their similarity
// ratio. Returns 0 when either side normalizes to the empty string.
func NormalizedSimilarity(a, b string) float64 {
	return SimilarityRatio(Normalize(a), Normalize(b))
}
