// Package handler turns typed handler functions into http.HandlerFunc.
//
// A HandlerFunc receives a Context and a request value filled by binders,
// and returns a Response: the JSON envelope, a templ page, a redirect or a
// datastar event stream. Errors returned from binding or rendering go to a
// single ErrorHandler, which maps HTTPError and ValidationError to their
// status codes.
//
//	http.Handle("/login", handler.Wrap(loginHandler,
//		handler.WithBinders[handler.Context, loginForm](binder.Form()),
//		handler.WithErrorHandler[handler.Context, loginForm](errHandler),
//	))
package handler
