package auth

import "golang.org/x/crypto/bcrypt"

// passwordCost is fixed; rounds are not configurable.
const passwordCost = bcrypt.DefaultCost

// HashPassword returns a salted bcrypt digest of plain.
func HashPassword(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plain matches digest. A malformed digest is
// reported as a mismatch.
func VerifyPassword(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
