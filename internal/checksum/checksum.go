// Package checksum hashes note content for change detection and optimistic
// concurrency. The digest doubles as the ETag-style token on the notes API.
package checksum

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
