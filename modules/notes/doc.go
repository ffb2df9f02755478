// Package notes gives dashboard pages and the API one view of a session's
// notes, kept in a per-session store so repeated page loads do not refetch
// and deploy toggles show up everywhere at once.
package notes
