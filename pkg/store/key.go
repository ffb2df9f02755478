package store

import (
	"crypto/sha256"
	"encoding/hex"
)

// SessionKey identifies a session without keeping its token in memory.
type SessionKey string

// KeyForToken digests a session token into a SessionKey.
func KeyForToken(token string) SessionKey {
	sum := sha256.Sum256([]byte(token))
	return SessionKey(hex.EncodeToString(sum[:]))
}
