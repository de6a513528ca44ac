package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrHashMalformed means a stored hash is not a bcrypt product. A plain
// mismatch is not an error; CheckPassword reports it as false.
var ErrHashMalformed = errors.New("password hash malformed")

// Hasher hashes and verifies passwords with bcrypt. Each HashPassword call
// uses a fresh salt, so equal inputs yield distinct hashes.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given work factor. cost 0 means
// bcrypt.DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// HashPassword returns the salted bcrypt hash of plain.
func (h *Hasher) HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(b), nil
}

// CheckPassword reports whether plain matches hash. The comparison is
// constant-time. It errs only when hash is not something HashPassword could
// have produced.
func (h *Hasher) CheckPassword(plain, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %v", ErrHashMalformed, err)
	}
}
