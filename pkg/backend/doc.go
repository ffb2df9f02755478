// Package backend is a typed HTTP client for the notes backend.
//
// The backend owns accounts, sessions and notes. This package forwards the
// opaque session token as a cookie, decodes JSON answers into the types in
// types.go, and turns non-2xx answers into *Error values that match
// ErrUnauthorized and ErrNotFound with errors.Is. Transport failures wrap
// ErrUnavailable.
//
//	client, err := backend.New("https://api.example.com", backend.WithTimeout(5*time.Second))
//	user, err := client.Me(ctx, token)
//	if errors.Is(err, backend.ErrUnauthorized) {
//		// session is gone
//	}
package backend
