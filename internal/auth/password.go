// Package auth holds the credential primitives: one-way password hashing
// and verification.
package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when the config does not set one.
const DefaultCost = 10

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash turns a plaintext password into a bcrypt digest. The digest embeds a
// random salt, so hashing the same password twice yields different digests.
func (h *Hasher) Hash(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// Verify reports whether password matches the stored digest. bcrypt's
// comparison is constant-time over the derived key.
func (h *Hasher) Verify(password, digest string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(password))
	return err == nil
}
