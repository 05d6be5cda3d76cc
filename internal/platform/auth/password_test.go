package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	digest, err := HashPassword("s3cret!")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if digest == "s3cret!" {
		t.Fatal("digest must not equal plaintext")
	}
	if !strings.HasPrefix(digest, "$2") {
		t.Errorf("expected bcrypt digest, got %q", digest)
	}
	if !VerifyPassword("s3cret!", digest) {
		t.Error("expected password to verify")
	}
	if VerifyPassword("wrong", digest) {
		t.Error("expected wrong password to fail")
	}
}

func TestHashPassword_Salted(t *testing.T) {
	a, _ := HashPassword("same")
	b, _ := HashPassword("same")
	if a == b {
		t.Error("expected distinct digests for the same password")
	}
}

func TestVerifyPassword_MalformedDigest(t *testing.T) {
	for _, digest := range []string{"", "not-a-hash", "$2a$10$short"} {
		if VerifyPassword("anything", digest) {
			t.Errorf("VerifyPassword with digest %q should report failure", digest)
		}
	}
}
