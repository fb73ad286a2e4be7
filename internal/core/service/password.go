package service

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"math/big"

	"golang.org/x/crypto/pbkdf2"
)

const (
	PBKDF2Iterations = 100000
	SaltLength       = 32
	HashLength       = 32
	ResetTokenLength = 32
)

const tokenAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// NewSalt returns SaltLength bytes from the system CSPRNG.
func NewSalt() ([]byte, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}
	return salt, nil
}

// HashPassword derives the stored key for password with PBKDF2-HMAC-SHA256.
func HashPassword(password string, salt []byte) []byte {
	return pbkdf2.Key([]byte(password), salt, PBKDF2Iterations, HashLength, sha256.New)
}

// HashNewPassword derives a key under a freshly generated salt.
func HashNewPassword(password string) (hash, salt []byte, err error) {
	salt, err = NewSalt()
	if err != nil {
		return nil, nil, err
	}
	return HashPassword(password, salt), salt, nil
}

// PasswordMatches recomputes the key for password and compares it with hash
// in constant time.
func PasswordMatches(password string, salt, hash []byte) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare(candidate, hash) == 1
}

// NewResetTokenValue returns a ResetTokenLength string of [A-Za-z0-9]
// characters drawn uniformly from the system CSPRNG.
func NewResetTokenValue() (string, error) {
	max := big.NewInt(int64(len(tokenAlphabet)))
	buf := make([]byte, ResetTokenLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("failed to generate reset token: %w", err)
		}
		buf[i] = tokenAlphabet[n.Int64()]
	}
	return string(buf), nil
}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
