// Package tenant recognises per-user subdomains and routes them to the
// internal profile and note pages.
//
// A tenant is a registered user whose published notes are served under
// "<username>.<domain>". Requests to such hosts are rewritten, not
// redirected:
//
//	alice.example.com/         -> /profile/alice
//	alice.example.com/my-note  -> /profile/alice/note/my-note
//
// The internal /profile routes must be wrapped with RequireRewritten so they
// are reachable only through a subdomain.
package tenant
