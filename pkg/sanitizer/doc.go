// Package sanitizer cleans note HTML synced from the desktop client before
// it is served on public pages.
package sanitizer
