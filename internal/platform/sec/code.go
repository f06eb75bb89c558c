// Copyright (c) 2026 Kritika. All rights reserved.

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateConfirmationCode returns a fresh opaque confirmation code built
// from byteLength bytes of OS entropy, hex-encoded.
func GenerateConfirmationCode(byteLength int) (string, error) {
	buf := make([]byte, byteLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("sec: failed to generate confirmation code: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// DigestCode returns the SHA-256 hex digest of a confirmation code.
//
// Only the digest is persisted. The digest is deterministic on purpose: the
// storage layer consumes codes with a single compare-and-clear UPDATE, which
// needs an exact column match. A salted hash would defeat that atomicity.
func DigestCode(code string) string {
	sum := sha256.Sum256([]byte(code))
	return hex.EncodeToString(sum[:])
}
