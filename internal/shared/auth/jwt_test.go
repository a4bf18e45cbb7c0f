package auth

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestSignAndVerify(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, err := NewSigner("secret", 0, "dev")
	if err != nil {
		t.Fatalf("NewSigner: %v", err)
	}
	s = s.WithClock(fixedClock(issued))

	token, err := s.Sign(Claims{Sub: "user-1", Email: "ada@example.com"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	claims, err := s.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.Sub != "user-1" || claims.Email != "ada@example.com" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if got := time.Unix(claims.Exp, 0).Sub(issued); got != 7*24*time.Hour {
		t.Fatalf("token lifetime = %v, want 168h", got)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issued := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s, _ := NewSigner("secret", time.Hour, "dev")
	token, err := s.WithClock(fixedClock(issued)).Sign(Claims{Sub: "user-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	later := s.WithClock(fixedClock(issued.Add(2 * time.Hour)))
	if _, err := later.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsTampering(t *testing.T) {
	s, _ := NewSigner("secret", 0, "dev")
	other, _ := NewSigner("other", 0, "dev")
	token, _ := s.Sign(Claims{Sub: "user-1"})

	cases := map[string]string{
		"wrong secret": "",
		"garbage":      "not-a-token",
		"truncated":    token[:strings.LastIndex(token, ".")],
		"swapped body": strings.Replace(token, strings.Split(token, ".")[1], "eyJzdWIiOiJhZG1pbiJ9", 1),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			verifier := s
			if tok == "" {
				verifier, tok = other, token
			}
			if _, err := verifier.Verify(tok); !errors.Is(err, ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}

func TestNewSignerRequiresSecretInProduction(t *testing.T) {
	if _, err := NewSigner("  ", 0, "production"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
	s, err := NewSigner("", 0, "dev")
	if err != nil {
		t.Fatalf("dev signer: %v", err)
	}
	if s.TTL() != DefaultTTL {
		t.Fatalf("TTL = %v", s.TTL())
	}
}

func TestSignRequiresSubject(t *testing.T) {
	s, _ := NewSigner("secret", 0, "dev")
	if _, err := s.Sign(Claims{}); err == nil {
		t.Fatalf("expected error for empty sub")
	}
}
