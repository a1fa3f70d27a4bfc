// Package auth implements password hashing and JWT issuance/verification.
package auth

import "golang.org/x/crypto/bcrypt"

// bcrypt work factor. bcrypt.DefaultCost is 10.
const hashCost = bcrypt.DefaultCost

// HashPassword derives a salted one-way hash of the plaintext password.
// It fails only on an underlying library/RNG failure.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), hashCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash. A
// mismatch returns false, never an error.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
