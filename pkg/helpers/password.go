package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes the plaintext password using bcrypt. The salt is
// generated internally and stored inside the digest.
func HashPassword(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword compares a bcrypt digest with a plaintext password. Malformed
// digests verify as false rather than erroring.
func CheckPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
