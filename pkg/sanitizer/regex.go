package sanitizer

import "regexp"

var (
	h1Regex         = regexp.MustCompile(`(?is)<h1\b[^>]*>(.*?)</h1\s*>`)
	emptyDivRegex   = regexp.MustCompile(`(?i)<div\b[^>]*>\s*(<br\s*/?>)?\s*</div\s*>`)
	htmlTagRegex    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRegex = regexp.MustCompile(`\s+`)
)
