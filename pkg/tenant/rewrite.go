package tenant

import (
	"net/http"
	"strings"
)

// RewritePath maps a path requested on a tenant subdomain to the internal
// route that renders it: the root becomes the profile page, anything else
// becomes a note whose slug is the path without its leading slash.
func RewritePath(tenant, path string) string {
	if path == "" || path == "/" {
		return "/profile/" + tenant
	}
	return "/profile/" + tenant + "/note/" + strings.TrimPrefix(path, "/")
}

// Rewrite returns a shallow copy of r routed to the tenant's internal page.
// Only the path changes: the query, the Host header and therefore the
// address the client sees are preserved. The copy is marked so that
// RequireRewritten lets it through.
func Rewrite(r *http.Request, tenant string) *http.Request {
	info := Info{Tenant: tenant, OriginalPath: r.URL.Path}

	r2 := r.Clone(WithInfo(r.Context(), info))
	r2.URL.Path = RewritePath(tenant, r.URL.Path)
	if r.URL.RawPath != "" {
		r2.URL.RawPath = RewritePath(tenant, r.URL.RawPath)
	}
	return r2
}

// RequireRewritten hides the internal tenant routes from direct access:
// requests that did not arrive through Rewrite get notFound, or a plain
// 404 when notFound is nil.
func RequireRewritten(notFound http.Handler) func(http.Handler) http.Handler {
	if notFound == nil {
		notFound = http.NotFoundHandler()
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := FromContext(r.Context()); !ok {
				notFound.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
