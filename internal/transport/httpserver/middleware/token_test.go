package middleware

import (
	"errors"
	"testing"
	"time"

	"fintrack/internal/config"
)

func TestTokenRoundTrip(t *testing.T) {
	manager := NewTokenManager(config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour})

	token, err := manager.Issue("user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	userID, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("expected valid token, got %v", err)
	}
	if userID != "user-1" {
		t.Fatalf("expected user-1, got %q", userID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager(config.JWTConfig{Secret: "secret-a", TokenTTL: time.Hour})
	verifier := NewTokenManager(config.JWTConfig{Secret: "secret-b", TokenTTL: time.Hour})

	token, err := issuer.Issue("user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := verifier.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	// The constructor replaces non-positive TTLs, so build directly.
	manager := &TokenManager{secret: []byte("test-secret"), ttl: -time.Minute}

	token, err := manager.Issue("user-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	manager := NewTokenManager(config.JWTConfig{Secret: "test-secret", TokenTTL: time.Hour})

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", token, err)
		}
	}
}
