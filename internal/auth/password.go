package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("password mismatch")

// HashPassword hashes a plaintext password with configured cost.
func HashPassword(password string, cost int) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// ComparePassword verifies a password against its hashed value.
func ComparePassword(hashed, plain string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)); err != nil {
		return ErrPasswordMismatch
	}
	return nil
}

// Burner performs throwaway comparisons against a hash of the same cost as
// stored passwords, so a missing account costs as much as a wrong password.
type Burner struct {
	hash []byte
}

// NewBurner builds a Burner whose dummy hash uses cost.
func NewBurner(cost int) (*Burner, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte("alumni-connect-dummy"), cost)
	if err != nil {
		return nil, err
	}
	return &Burner{hash: hash}, nil
}

// Cost reports the bcrypt cost of the dummy hash.
func (b *Burner) Cost() int {
	cost, _ := bcrypt.Cost(b.hash)
	return cost
}

// Burn compares plain against the dummy hash and discards the result.
func (b *Burner) Burn(plain string) {
	_ = bcrypt.CompareHashAndPassword(b.hash, []byte(plain))
}
