package tenant

import (
	"regexp"
	"strings"
)

const maxLabelLength = 63

var validLabel = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*$`)

// ParseSubdomain extracts the first host label when the host has the shape
// of a tenant address: "<tenant>.localhost" during development or
// "<tenant>.<domain>.<tld>" in production. The port, if any, is ignored.
//
// It does not treat "www" specially; Classifier does.
func ParseSubdomain(host string) (string, bool) {
	if i := strings.IndexByte(host, ':'); i >= 0 {
		host = host[:i]
	}
	labels := strings.Split(host, ".")

	switch {
	case strings.Contains(host, "localhost") && len(labels) > 1:
		if labels[0] == "localhost" {
			return "", false
		}
		return nonEmpty(labels[0])
	case host == "localhost" || strings.Contains(host, "127.0.0.1"):
		return "", false
	case len(labels) >= 3:
		return nonEmpty(labels[0])
	default:
		return "", false
	}
}

func nonEmpty(label string) (string, bool) {
	return label, label != ""
}

// Result is the outcome of classifying a Host header.
type Result struct {
	Tenant   string
	IsTenant bool
}

// Classifier decides whether a Host header addresses the main application
// or a tenant subdomain. Reserved labels and malformed labels never yield
// a tenant, and when an application domain is configured only its direct
// subdomains do.
type Classifier struct {
	domain   string
	reserved map[string]struct{}
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithDomain restricts production tenants to "<label>.<domain>".
// Localhost-shaped hosts are unaffected.
func WithDomain(domain string) Option {
	return func(c *Classifier) {
		c.domain = strings.Trim(strings.ToLower(domain), ".")
	}
}

// WithReserved replaces the reserved label set. Labels are matched
// case-insensitively.
func WithReserved(labels ...string) Option {
	return func(c *Classifier) {
		c.reserved = make(map[string]struct{}, len(labels))
		for _, l := range labels {
			if l = strings.TrimSpace(strings.ToLower(l)); l != "" {
				c.reserved[l] = struct{}{}
			}
		}
	}
}

// NewClassifier returns a Classifier that reserves "www" unless told otherwise.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{reserved: map[string]struct{}{"www": {}}}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Classify never fails: anything that is not a well-formed tenant host is
// reported as the main application.
func (c *Classifier) Classify(host string) Result {
	host = strings.ToLower(strings.TrimSpace(host))

	label, ok := ParseSubdomain(host)
	if !ok {
		return Result{}
	}
	if _, reserved := c.reserved[label]; reserved {
		return Result{}
	}
	if len(label) > maxLabelLength || !validLabel.MatchString(label) {
		return Result{}
	}
	if c.domain != "" && !strings.Contains(host, "localhost") {
		bare := host
		if i := strings.IndexByte(bare, ':'); i >= 0 {
			bare = bare[:i]
		}
		if bare != label+"."+c.domain {
			return Result{}
		}
	}
	return Result{Tenant: label, IsTenant: true}
}

// Domain returns the configured application domain, or "".
func (c *Classifier) Domain() string { return c.domain }
