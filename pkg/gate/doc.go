// Package gate is the edge routing and session policy of the web app.
//
// Every request is first classified by host: tenant subdomains are
// rewritten to their profile or note page and never session gated. Main
// domain requests are matched against an ordered route table:
//
//	/login, /register               auth-page
//	/dashboard, /authorize-client   protected
//	anything else                   public
//
// Auth pages redirect signed-in users to the dashboard. Protected pages
// redirect to /login (clearing the cookie) when the cookie is missing or
// the backend answers 401. Any other upstream failure lets the request
// through; the page itself re-checks the session.
//
// In ModePresence the cookie's existence is taken as proof of a session
// and the backend is never called.
package gate
