package auth

import "golang.org/x/crypto/bcrypt"

// bcryptCost is the work factor for password hashing. 10 rounds keeps
// hashing slow enough to resist offline brute force on current hardware.
const bcryptCost = 10

// PasswordHasher produces and verifies salted one-way password digests
// using bcrypt. bcrypt embeds a random salt in each digest, so hashing the
// same plaintext twice yields different digests that both verify.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher creates a PasswordHasher with the standard cost.
func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{cost: bcryptCost}
}

// Hash produces a salted bcrypt digest of the plaintext password.
func (h *PasswordHasher) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify reports whether the plaintext matches the digest. bcrypt performs
// the comparison in constant time. A malformed digest verifies as false;
// this never returns an error or panics.
func (h *PasswordHasher) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
