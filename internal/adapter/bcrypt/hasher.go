package bcrypt

import (
	"fmt"

	xbcrypt "golang.org/x/crypto/bcrypt"

	"github.com/parkhaus/parkhaus/internal/domain"
)

// Compile-time check: Hasher implements domain.PasswordHasher.
var _ domain.PasswordHasher = (*Hasher)(nil)

// Hasher implements domain.PasswordHasher using bcrypt. The cost is fixed
// at construction; zero means bcrypt's default cost.
type Hasher struct {
	cost int
}

// New creates a hasher with the given cost. Pass 0 for the default.
func New(cost int) *Hasher {
	if cost == 0 {
		cost = xbcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash applies the one-way transform to a plaintext credential.
func (h *Hasher) Hash(plaintext string) (string, error) {
	out, err := xbcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hashing credential: %w", err)
	}
	return string(out), nil
}

// Verify reports whether the plaintext matches the stored hash.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return xbcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
