// Package bff is the backend-for-frontend JSON API mounted at /api.
//
// Every endpoint answers with the handler JSON envelope. Authenticated
// endpoints relay the session cookie to the backend and refuse requests
// without one before any upstream call. A backend 4xx keeps its status and
// message; other failures are reported as a generic 500.
package bff
