// Package normalize provides text cleanup for raw source content:
// markup stripping, whitespace collapsing, and bounded previews.
package normalize

import (
	"strings"

	"golang.org/x/net/html"
)

// Ellipsis is the marker appended to truncated previews.
const Ellipsis = "..."

// StripMarkup removes HTML/XML tags from raw and returns the text
// content with whitespace collapsed. Plain text passes through with
// whitespace collapsed. Never fails; empty input yields "".
func StripMarkup(raw string) string {
	if raw == "" {
		return ""
	}
	if !strings.ContainsRune(raw, '<') {
		return CollapseWhitespace(raw)
	}

	var sb strings.Builder
	tokenizer := html.NewTokenizer(strings.NewReader(raw))
	for {
		tt := tokenizer.Next()
		if tt == html.ErrorToken {
			// io.EOF or malformed markup; keep whatever text we got.
			break
		}
		if tt == html.TextToken {
			sb.Write(tokenizer.Text())
			sb.WriteByte(' ')
		}
	}
	return CollapseWhitespace(sb.String())
}

// CollapseWhitespace reduces every run of whitespace to a single space
// and trims the edges.
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Preview returns text unchanged when it fits in max runes, otherwise
// the first max runes with a single trailing ellipsis. A truncated
// prefix that already ends with the marker is not doubled.
func Preview(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	cut := string(runes[:max])
	if strings.HasSuffix(cut, Ellipsis) {
		return cut
	}
	return cut + Ellipsis
}
