package auth

import (
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

// Password storage modes.
const (
	PasswordModeBcrypt = "bcrypt"
	PasswordModePlain  = "plain"
)

// PasswordHasher turns a password into its stored form and checks it back.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
	// Plain reports whether stored values equal the password, which lets the
	// store match credentials directly.
	Plain() bool
}

// NewPasswordHasher returns the hasher for mode.
func NewPasswordHasher(mode string) (PasswordHasher, error) {
	switch mode {
	case PasswordModeBcrypt, "":
		return bcryptHasher{cost: bcryptCost}, nil
	case PasswordModePlain:
		return plainHasher{}, nil
	default:
		return nil, fmt.Errorf("unknown password mode %q", mode)
	}
}

type bcryptHasher struct {
	cost int
}

// prehash digests the password to a fixed 44 bytes so inputs past bcrypt's
// 72-byte limit are accepted and every byte still counts.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

func (h bcryptHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword(prehash(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

func (h bcryptHasher) Verify(stored, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), prehash(password)) == nil
}

func (bcryptHasher) Plain() bool { return false }

// plainHasher keeps passwords as-is, for rows stored before hashing.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return password, nil }

func (plainHasher) Verify(stored, password string) bool { return stored == password }

func (plainHasher) Plain() bool { return true }
