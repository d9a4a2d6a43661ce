package auth

import (
	"testing"
	"time"
)

func TestIssueAndVerify(t *testing.T) {
	m := NewTokenManager("test-secret-at-least-16", time.Hour)

	token, err := m.Issue("user-abc")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	userID, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if userID != "user-abc" {
		t.Fatalf("expected user-abc, got %q", userID)
	}
}

func TestVerifyExpiredToken(t *testing.T) {
	m := NewTokenManager("test-secret-at-least-16", -time.Minute)

	token, err := m.Issue("user-abc")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := m.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	issuer := NewTokenManager("issuer-secret-123456", time.Hour)
	verifier := NewTokenManager("other-secret-7890123", time.Hour)

	token, err := issuer.Issue("user-abc")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(token); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyGarbage(t *testing.T) {
	m := NewTokenManager("test-secret-at-least-16", time.Hour)

	if _, err := m.Verify("not-a-token"); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}
