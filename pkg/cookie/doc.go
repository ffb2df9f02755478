// Package cookie handles the backend-issued session cookie.
//
// The web app never mints sessions itself. It reads the cookie to decide
// routing, attaches it to backend calls, relays the backend's Set-Cookie
// headers after login and expires the cookie on logout or when the
// backend rejects it.
package cookie
