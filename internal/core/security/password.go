// Package security holds the password hasher and the session token codec.
package security

import (
	"golang.org/x/crypto/bcrypt"
)

// MaxSecretBytes is bcrypt's input limit. Longer secrets are truncated before
// hashing and before verification.
const MaxSecretBytes = 72

// BcryptHasher hashes secrets with bcrypt at a fixed cost.
type BcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a hasher using cost, or bcrypt.DefaultCost when
// cost is outside bcrypt's accepted range.
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(truncate(secret), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Verify(secret, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncate(secret)) == nil
}

func truncate(secret string) []byte {
	b := []byte(secret)
	if len(b) > MaxSecretBytes {
		b = b[:MaxSecretBytes]
	}
	return b
}
