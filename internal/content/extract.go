// Package content derives display fields (plain-text excerpt, cover image)
// from stored post HTML for writes that omit them.
package content

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// DefaultExcerptLen caps the derived summary length in runes.
const DefaultExcerptLen = 200

// Post HTML is stored, not fetched, so the parser base URL is a placeholder.
var baseURL = &url.URL{Scheme: "https", Host: "localhost"}

// Excerpt derives a plain-text summary from post HTML, truncated to maxLen
// runes. Returns "" when the HTML has no text at all.
func Excerpt(html string, maxLen int) string {
	if maxLen < 1 {
		maxLen = DefaultExcerptLen
	}

	var text string
	if article, err := readability.FromReader(strings.NewReader(html), baseURL); err == nil {
		text = article.Excerpt
		if text == "" {
			text = article.TextContent
		}
	}
	if text == "" {
		// Readability rejects very short fragments; fall back to a plain
		// text extraction.
		if doc, err := goquery.NewDocumentFromReader(strings.NewReader(html)); err == nil {
			text = doc.Text()
		}
	}

	return truncate(collapseWhitespace(text), maxLen)
}

// FirstImage returns the source URL of the first image in the post HTML, or
// "" when there is none.
func FirstImage(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	src, _ := doc.Find("img").First().Attr("src")
	return strings.TrimSpace(src)
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncate cuts text to at most maxLen runes, preferring a word boundary.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := string(runes[:maxLen])
	if i := strings.LastIndex(cut, " "); i > 0 {
		cut = cut[:i]
	}
	return cut + "…"
}
