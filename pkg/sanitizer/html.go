package sanitizer

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// policy is safe for concurrent use once built.
var policy = bluemonday.UGCPolicy()

// StripDangerous reduces an HTML fragment to user-content markup: script
// elements, inline event handlers and non-http(s)/mailto URLs are removed,
// whatever their spelling or entity encoding.
func StripDangerous(s string) string {
	return policy.Sanitize(s)
}

// StripTitleHeadings removes the <h1> elements at the start of a note that
// repeat its title. Headings are taken in document order; empty ones are
// skipped and the first heading that is not part of title ends the run.
// A <div> left empty by the removal goes too.
func StripTitleHeadings(body, title string) string {
	if title == "" {
		return body
	}

	var cut [][2]int
	for _, m := range h1Regex.FindAllStringSubmatchIndex(body, -1) {
		text := PlainText(body[m[2]:m[3]])
		if text == "" {
			continue
		}
		if !strings.Contains(title, text) {
			break
		}
		cut = append(cut, [2]int{m[0], m[1]})
	}
	if len(cut) == 0 {
		return body
	}

	var b strings.Builder
	prev := 0
	for _, c := range cut {
		b.WriteString(body[prev:c[0]])
		prev = c[1]
	}
	b.WriteString(body[prev:])
	return emptyDivRegex.ReplaceAllString(b.String(), "")
}

// Note prepares a published note body for rendering.
func Note(body, title string) string {
	return StripTitleHeadings(StripDangerous(body), title)
}

// PlainText strips tags, unescapes entities and collapses whitespace.
func PlainText(s string) string {
	s = htmlTagRegex.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	return strings.TrimSpace(whitespaceRegex.ReplaceAllString(s, " "))
}

// Excerpt returns at most n runes of the plain text of s, ending with an
// ellipsis when shortened.
func Excerpt(s string, n int) string {
	text := PlainText(s)
	if n <= 0 || utf8.RuneCountInString(text) <= n {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:n])) + "…"
}
