package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PinVerifier checks the operator maintenance PIN.
type PinVerifier interface {
	Verify(pin string) error
}

// BcryptPinVerifier compares PINs against a bcrypt hash from config.
type BcryptPinVerifier struct {
	hash string
}

// NewBcryptPinVerifier returns a verifier for the stored hash.
func NewBcryptPinVerifier(hash string) (*BcryptPinVerifier, error) {
	if hash == "" {
		return nil, errors.New("auth: empty operator pin hash")
	}
	return &BcryptPinVerifier{hash: hash}, nil
}

// Verify checks the provided PIN.
func (v *BcryptPinVerifier) Verify(pin string) error {
	if pin == "" {
		return errors.New("auth: empty pin")
	}
	return bcrypt.CompareHashAndPassword([]byte(v.hash), []byte(pin))
}

// HashPin produces a bcrypt hash suitable for the config file.
func HashPin(pin string) (string, error) {
	if pin == "" {
		return "", errors.New("auth: empty pin")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
