package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestIssueAndParseToken(t *testing.T) {
	t.Parallel()

	secret := []byte("super-secret")

	tok, err := IssueToken("bob", secret)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	subject, err := ParseSubject(tok, secret)
	if err != nil {
		t.Fatalf("ParseSubject error: %v", err)
	}
	if subject != "bob" {
		t.Fatalf("subject mismatch: got %q want %q", subject, "bob")
	}
}

func TestParseSubject_WrongSecret(t *testing.T) {
	t.Parallel()

	tok, err := IssueToken("bob", []byte("right-secret"))
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	if _, err := ParseSubject(tok, []byte("wrong-secret")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSubject_TamperedSignature(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	tok, err := IssueToken("bob", secret)
	if err != nil {
		t.Fatalf("IssueToken error: %v", err)
	}

	// Flip a character in the signature segment.
	parts := strings.Split(tok, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", tok)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	tampered := parts[0] + "." + parts[1] + "." + string(sig)

	if _, err := ParseSubject(tampered, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestParseSubject_Expired(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   "bob",
		IssuedAt:  jwt.NewNumericDate(now.Add(-TokenTTL - time.Minute)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseSubject(tok, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestParseSubject_MissingSubject(t *testing.T) {
	t.Parallel()

	secret := []byte("secret")
	claims := jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatalf("sign error: %v", err)
	}

	if _, err := ParseSubject(tok, secret); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing subject, got %v", err)
	}
}

func TestParseSubject_Malformed(t *testing.T) {
	t.Parallel()

	if _, err := ParseSubject("not.a.token", []byte("secret")); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
