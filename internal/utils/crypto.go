// internal/utils/crypto.go
package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

func HashString(input string) string {
	hasher := sha256.New()
	hasher.Write([]byte(input))
	return hex.EncodeToString(hasher.Sum(nil))
}

// Fingerprint is a short, stable hash used to correlate log lines for a
// session without writing the session id itself.
func Fingerprint(input string) string {
	if input == "" {
		return ""
	}
	return HashString(input)[:12]
}
