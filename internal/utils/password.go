package utils

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MaxPasswordBytes is the longest input bcrypt accepts.
const MaxPasswordBytes = 72

// unknownUserHash is compared against when a login names no account, so the
// response time does not reveal which usernames exist.
var unknownUserHash, _ = bcrypt.GenerateFromPassword([]byte("no-such-staff-user"), bcrypt.DefaultCost)

// HashPassword hashes a staff password with bcrypt.
func HashPassword(password string) (string, error) {
	if len(password) > MaxPasswordBytes {
		return "", fmt.Errorf("password longer than %d bytes", MaxPasswordBytes)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPasswordHash compares a plaintext password with a bcrypt hash.
func CheckPasswordHash(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// BurnPasswordCheck spends the same work as CheckPasswordHash for a login
// that matched no account.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(unknownUserHash, []byte(password))
}
