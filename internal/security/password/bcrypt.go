// Package password wraps bcrypt hashing and verification behind the
// PasswordVerifier port.
package password

import "golang.org/x/crypto/bcrypt"

// BcryptVerifier hashes and verifies passwords with bcrypt at the default cost.
type BcryptVerifier struct{}

func NewBcryptVerifier() BcryptVerifier {
	return BcryptVerifier{}
}

// Hash returns the bcrypt hash of a plaintext password.
func (BcryptVerifier) Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Matches reports whether plaintext matches the stored hash.
func (BcryptVerifier) Matches(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
