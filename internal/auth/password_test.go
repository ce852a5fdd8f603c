package auth

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if !VerifyPassword("correct horse battery staple", hash) {
		t.Fatalf("expected matching password to verify")
	}
	if VerifyPassword("wrong password", hash) {
		t.Fatalf("expected mismatched password to fail")
	}
}

func TestHashPassword_FreshSalt(t *testing.T) {
	t.Parallel()

	first, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	second, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if first == second {
		t.Fatalf("expected distinct hashes for the same password")
	}
}

func TestHashPassword_TooLong(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("a", MaxPasswordBytes+1)
	if _, err := HashPassword(long); !errors.Is(err, ErrPasswordTooLong) {
		t.Fatalf("expected ErrPasswordTooLong, got %v", err)
	}

	// Exactly at the limit is fine.
	if _, err := HashPassword(strings.Repeat("a", MaxPasswordBytes)); err != nil {
		t.Fatalf("HashPassword at limit error: %v", err)
	}
}

func TestVerifyPassword_FailsClosed(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("pw")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	if VerifyPassword(strings.Repeat("a", MaxPasswordBytes+1), hash) {
		t.Fatalf("oversized password must fail verification")
	}
	if VerifyPassword("pw", "not-a-bcrypt-hash") {
		t.Fatalf("malformed verifier must fail verification")
	}
	if VerifyPassword("pw", "") {
		t.Fatalf("empty verifier must fail verification")
	}
}
