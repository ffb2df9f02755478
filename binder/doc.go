// Package binder fills request structs from JSON bodies, form posts and
// query strings for handler.Wrap, and reads multipart file uploads.
package binder
