// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService hashes and verifies user passwords. The concrete
// implementation lives in the integration layer so use cases stay free of
// crypto details.
type PasswordService interface {
	// HashPassword derives a storable hash from a plain text password.
	HashPassword(password string) (string, error)

	// VerifyPassword reports, as a nil error, whether the plain text
	// password matches the stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords below the minimum policy.
	ValidatePasswordStrength(password string) error
}
