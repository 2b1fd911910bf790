package helpers

import "golang.org/x/crypto/bcrypt"

// MaxPasswordBytes is bcrypt's input limit; longer passwords are rejected by GenerateFromPassword.
const MaxPasswordBytes = 72

// PasswordFits reports whether plain is short enough to hash.
func PasswordFits(plain string) bool {
	return len(plain) <= MaxPasswordBytes
}

// HashPassword hashes the plain text password using bcrypt (salt is embedded in the hash)
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CompareHashAndPassword compares a bcrypt hash with a plain password
func CompareHashAndPassword(hash string, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}

// dummyHash is compared against when the account does not exist so that
// unknown-email and wrong-password logins cost the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("linkshort-timing-equaliser"), bcrypt.DefaultCost)

// BurnCompare spends one bcrypt comparison and always reports false.
func BurnCompare(plain string) bool {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(plain))
	return false
}
