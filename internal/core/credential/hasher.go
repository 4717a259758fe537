package credential

import "golang.org/x/crypto/bcrypt"

// bcryptCost keeps brute-force infeasible while bounding login latency.
const bcryptCost = 12

// Hasher produces and verifies salted bcrypt password hashes.
type Hasher struct{}

func NewHasher() Hasher {
	return Hasher{}
}

// Hash returns the salted hash of password as one opaque string. bcrypt
// generates a fresh random salt and embeds it in the output.
func (Hasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether password matches the stored hash. A malformed stored
// hash is a verification failure, not an error: bcrypt surfaces it as a
// non-nil comparison result and the caller sees the same false as a wrong
// password.
func (Hasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
