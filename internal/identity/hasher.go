package identity

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Hasher produces and verifies salted bcrypt password digests.
// It is stateless and safe for concurrent use.
type Hasher struct {
	cost int
}

// NewHasher creates a hasher with the default bcrypt cost.
func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

// NewHasherWithCost creates a hasher with an explicit bcrypt cost.
// Tests use bcrypt.MinCost to keep hashing fast.
func NewHasherWithCost(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt digest of password. The salt is generated
// per call and embedded in the digest.
func (h *Hasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether password matches digest. It never returns an
// error: any mismatch or malformed digest yields false.
func (h *Hasher) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
