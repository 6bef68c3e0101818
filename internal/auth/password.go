package auth

import "github.com/alexedwards/argon2id"

// HashPassword derives a salted argon2id hash for storage.
func HashPassword(password string) (string, error) {
	return argon2id.CreateHash(password, argon2id.DefaultParams)
}

// VerifyPassword checks a candidate password against a stored argon2id hash.
// The comparison is constant-time; plaintext equality is never used.
func VerifyPassword(password, hash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, hash)
}
