// Package views renders the HTML pages as templ components. Text and
// attribute values are escaped; only already-sanitized note bodies are
// written raw.
package views
