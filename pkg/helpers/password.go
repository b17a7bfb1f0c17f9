package helpers

import "golang.org/x/crypto/bcrypt"

// passwordCost is bcrypt's default; stored hashes encode their cost, so
// raising it later only affects new passwords.
const passwordCost = bcrypt.DefaultCost

// HashPassword derives a bcrypt hash for storage.
func HashPassword(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CompareHashAndPassword reports whether plain matches the stored hash.
func CompareHashAndPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
