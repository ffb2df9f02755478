// Package httpserver runs the web process's HTTP server with graceful
// shutdown and provides liveness and readiness handlers.
package httpserver
