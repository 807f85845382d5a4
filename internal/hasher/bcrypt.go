// Package hasher generates and verifies bcrypt password hashes.
package hasher

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordLength is the number of password bytes bcrypt consumes.
const MaxPasswordLength = 72

// versionPrefix is emitted instead of the library's "$2a$". Both name the
// same algorithm for inputs within MaxPasswordLength and both verify.
const versionPrefix = "$2b$"

var (
	// ErrPasswordTooLong is returned for passwords over MaxPasswordLength bytes
	ErrPasswordTooLong = errors.New("password exceeds 72 bytes")

	// ErrMismatch is returned when a password does not match a hash
	ErrMismatch = errors.New("password does not match hash")
)

// Hasher produces salted bcrypt hashes at a fixed cost
type Hasher struct {
	cost int
}

// New creates a Hasher. Costs outside bcrypt's range are rejected by Hash.
func New(cost int) *Hasher {
	return &Hasher{cost: cost}
}

// Cost returns the configured bcrypt cost
func (h *Hasher) Cost() int {
	return h.cost
}

// Hash returns the bcrypt hash of password using a freshly generated salt
func (h *Hasher) Hash(password string) (string, error) {
	if len(password) > MaxPasswordLength {
		return "", ErrPasswordTooLong
	}
	if h.cost < bcrypt.MinCost || h.cost > bcrypt.MaxCost {
		return "", fmt.Errorf("invalid bcrypt cost %d", h.cost)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return versionPrefix + strings.TrimPrefix(string(hash), "$2a$"), nil
}

// Verify checks password against hash
func Verify(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	default:
		return fmt.Errorf("failed to verify hash: %w", err)
	}
}
