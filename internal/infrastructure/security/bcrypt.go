package security

import (
	"github.com/securitysvcs/auth-service/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher is the credential hasher: salted and adaptive. bcrypt generates
// a fresh random salt per call and embeds salt + cost in the hash string, so
// two hashes of the same password differ yet both verify.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher(cost int) *BcryptHasher {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", domain.ErrHashFailed(err)
	}
	return string(b), nil
}

// Compare returns nil on match. Any error, including a malformed stored hash,
// is a mismatch from the caller's point of view; it never panics.
func (h *BcryptHasher) Compare(hash string, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
