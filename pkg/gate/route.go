package gate

import (
	"strings"

	"github.com/webnotes/notesweb/pkg/tenant"
)

// Route is the class a request falls into before any session check.
type Route string

const (
	RoutePublic     Route = "public"
	RouteAuthPage   Route = "auth-page"
	RouteProtected  Route = "protected"
	RouteTenantRoot Route = "tenant-root"
	RouteTenantNote Route = "tenant-note"
)

// Input is everything route classification looks at.
type Input struct {
	Host tenant.Result
	Path string
}

// Rule pairs a predicate with the route it selects.
type Rule struct {
	Name  string
	Match func(Input) bool
	Route Route
}

// Table is an ordered rule list: the first matching rule wins and requests
// no rule matches are public.
type Table []Rule

// Classify evaluates the table top to bottom.
func (t Table) Classify(in Input) Route {
	for _, rule := range t {
		if rule.Match(in) {
			return rule.Route
		}
	}
	return RoutePublic
}

// DefaultTable lets excluded paths through untouched on every host, then
// puts tenant hosts ahead of every main-domain rule, so subdomain requests
// are never session gated. Excluded prefixes match whole path segments.
func DefaultTable(excluded, authPrefixes, protectedPrefixes []string) Table {
	return Table{
		{Name: "excluded", Route: RoutePublic, Match: hasSegmentPrefix(excluded)},
		{Name: "tenant root", Route: RouteTenantRoot, Match: func(in Input) bool {
			return in.Host.IsTenant && (in.Path == "/" || in.Path == "")
		}},
		{Name: "tenant note", Route: RouteTenantNote, Match: func(in Input) bool {
			return in.Host.IsTenant
		}},
		{Name: "auth page", Route: RouteAuthPage, Match: hasPrefix(authPrefixes)},
		{Name: "protected", Route: RouteProtected, Match: hasPrefix(protectedPrefixes)},
	}
}

func hasPrefix(prefixes []string) func(Input) bool {
	return func(in Input) bool {
		for _, p := range prefixes {
			if strings.HasPrefix(in.Path, p) {
				return true
			}
		}
		return false
	}
}

func hasSegmentPrefix(prefixes []string) func(Input) bool {
	return func(in Input) bool {
		for _, p := range prefixes {
			if in.Path == p || strings.HasPrefix(in.Path, p+"/") {
				return true
			}
		}
		return false
	}
}
