package auth

import (
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Verifier checks a candidate password against a stored hash.
type Verifier interface {
	Verify(storedHash, candidate string) bool
}

// PasswordVerifier accepts bcrypt hashes and argon2id hashes in PHC string
// form ($argon2id$v=19$m=...,t=...,p=...$salt$hash). Anything else never verifies.
type PasswordVerifier struct{}

func (PasswordVerifier) Verify(storedHash, candidate string) bool {
	switch {
	case storedHash == "":
		return false
	case strings.HasPrefix(storedHash, "$argon2id$"):
		ok, err := verifyArgon2id(storedHash, candidate)
		return err == nil && ok
	default:
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(candidate)) == nil
	}
}

// HashPassword returns a bcrypt hash suitable for the teachers table.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func verifyArgon2id(encoded, candidate string) (bool, error) {
	// "", "argon2id", "v=19", "m=65536,t=3,p=4", salt, hash
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 {
		return false, fmt.Errorf("argon2id: malformed hash")
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return false, fmt.Errorf("argon2id: version: %w", err)
	}
	if version != argon2.Version {
		return false, fmt.Errorf("argon2id: unsupported version %d", version)
	}

	var memory, iterations uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &iterations, &threads); err != nil {
		return false, fmt.Errorf("argon2id: params: %w", err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false, fmt.Errorf("argon2id: salt: %w", err)
	}
	want, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return false, fmt.Errorf("argon2id: hash: %w", err)
	}

	got := argon2.IDKey([]byte(candidate), salt, iterations, memory, threads, uint32(len(want)))
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}
