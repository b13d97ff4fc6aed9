package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost matches the work factor the original deployment used. Hashing is
// performed exactly once per new plaintext: callers only invoke HashPassword
// on register or when an update actually carries a new password.
const bcryptCost = 12

// HashPassword derives a salted one-way hash from a plaintext password.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plain matches the stored hash.
func CheckPassword(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
