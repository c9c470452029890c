package auth

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier compares a stored hash with a login attempt.
type PasswordVerifier interface {
	// Compare returns nil when password matches hashedPassword.
	Compare(hashedPassword, password string) error
}

// BcryptVerifier implements PasswordVerifier using bcrypt.
type BcryptVerifier struct{}

var _ PasswordVerifier = BcryptVerifier{}

// Compare implements PasswordVerifier.
func (BcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// HashPassword produces a bcrypt hash at the default cost. Used when
// seeding the fixture users.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
