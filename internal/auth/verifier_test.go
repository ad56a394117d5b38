package auth

import (
	"encoding/base64"
	"fmt"
	"testing"

	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordVerifier_Bcrypt(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("GenerateFromPassword: %v", err)
	}

	v := PasswordVerifier{}
	if !v.Verify(string(hash), "s3cret") {
		t.Error("expected matching password to verify")
	}
	if v.Verify(string(hash), "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestPasswordVerifier_Argon2id(t *testing.T) {
	salt := []byte("0123456789abcdef")
	key := argon2.IDKey([]byte("s3cret"), salt, 1, 8*1024, 1, 32)
	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 8*1024, 1, 1,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))

	v := PasswordVerifier{}
	if !v.Verify(encoded, "s3cret") {
		t.Error("expected matching password to verify")
	}
	if v.Verify(encoded, "wrong") {
		t.Error("expected wrong password to fail")
	}
}

func TestPasswordVerifier_Malformed(t *testing.T) {
	v := PasswordVerifier{}
	for _, stored := range []string{"", "plaintext", "$argon2id$v=19$broken"} {
		if v.Verify(stored, "plaintext") {
			t.Errorf("Verify(%q) should be false", stored)
		}
	}
}

func TestHashPassword_RoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !(PasswordVerifier{}).Verify(hash, "correct horse") {
		t.Error("hash from HashPassword did not verify")
	}
}
