package security

import "golang.org/x/crypto/bcrypt"

// PasswordVerifier checks a plaintext password against a stored hash
type PasswordVerifier interface {
	Compare(hashedPassword, password string) error
}

type bcryptVerifier struct{}

// NewBcryptVerifier returns a PasswordVerifier for bcrypt hashes
func NewBcryptVerifier() PasswordVerifier {
	return bcryptVerifier{}
}

func (bcryptVerifier) Compare(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}
