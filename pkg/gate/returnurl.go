package gate

import (
	"net/url"
	"strings"
)

const (
	// ReturnURLParam carries the page to go back to after login.
	ReturnURLParam = "returnUrl"
	// legacyReturnParam is still read for old links.
	legacyReturnParam = "next"
)

// IsInternalPath reports whether s is a same-origin path that is safe to
// redirect to. Scheme-relative ("//host"), backslash and absolute URLs are
// rejected.
func IsInternalPath(s string) bool {
	if !strings.HasPrefix(s, "/") || strings.HasPrefix(s, "//") {
		return false
	}
	if strings.ContainsAny(s, "\\\r\n\t") {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme == "" && u.Host == "" && u.User == nil
}

// SafeReturnURL picks the post-login destination from returnUrl, then the
// legacy next parameter. Values that are not internal paths are ignored and
// fallback is returned.
func SafeReturnURL(q url.Values, fallback string) string {
	for _, key := range []string{ReturnURLParam, legacyReturnParam} {
		if v := q.Get(key); v != "" && IsInternalPath(v) {
			return v
		}
	}
	return fallback
}
