package helpers

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// GenerateResetToken creates a one-time password-reset token. The plain
// token goes to the user; only its digest and expiry are persisted.
func GenerateResetToken(ttl time.Duration) (plain, hashed string, expiresAt time.Time, err error) {
	b := make([]byte, 20)
	if _, err = rand.Read(b); err != nil {
		return "", "", time.Time{}, err
	}
	plain = hex.EncodeToString(b)
	hashed = HashResetToken(plain)
	expiresAt = time.Now().Add(ttl)
	return plain, hashed, expiresAt, nil
}

// HashResetToken digests a plain reset token for storage and lookup.
// Equal digests imply equal inputs, so the stored value never needs to be
// reversed.
func HashResetToken(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}
