package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for password hashing. Hashing is CPU-bound;
// callers must not hold shared locks while invoking it.
const bcryptCost = 10

// HashPassword hashes a plaintext password with bcrypt. The salt is random so
// the same plaintext yields a different digest on every call.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// CheckPassword reports whether plain matches the stored digest. A malformed
// digest counts as a mismatch, never a distinct error. bcrypt's comparison is
// constant-time over the hash output.
func CheckPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
