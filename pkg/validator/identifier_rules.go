package validator

import "regexp"

var subdomainRegex = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// ValidSubdomain accepts a single lowercase DNS label: 1-63 letters, digits
// and hyphens, not starting or ending with a hyphen.
func ValidSubdomain(field, value string) Rule {
	return Matches(field, value, subdomainRegex,
		"lowercase letters, digits and inner hyphens only")
}
