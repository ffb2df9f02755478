// Package store keeps short-lived per-session data, such as a user's note
// list, in memory.
//
// A Store is an explicit value owned by whoever creates it; there is no
// package-level state. Values go stale after a TTL, concurrent loads of a
// key share one fetch, and writers notify subscribers without blocking on
// them.
//
//	notes := store.New[store.SessionKey, []backend.Note]()
//	list, err := notes.Load(ctx, store.KeyForToken(token), false, fetch)
package store
