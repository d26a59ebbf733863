package auth

import (
	"strings"
	"testing"
	"time"
)

func TestNewTokenManagerRequiresSecret(t *testing.T) {
	if _, err := NewTokenManager("", time.Hour); err == nil {
		t.Error("expected error for empty secret")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	m, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}

	token, err := m.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := m.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("UserID = %q, want %q", claims.UserID, "user-1")
	}
	if claims.Username != "alice" {
		t.Errorf("Username = %q, want %q", claims.Username, "alice")
	}
}

func TestVerifyRejectsTamperedToken(t *testing.T) {
	m, _ := NewTokenManager("test-secret", time.Hour)
	token, err := m.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	// Flip a character in the signature segment
	tampered := token[:len(token)-2] + "xx"
	if tampered == token {
		tampered = token[:len(token)-2] + "yy"
	}
	if _, err := m.Verify(tampered); err == nil {
		t.Error("expected error for tampered token")
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer, _ := NewTokenManager("secret-a", time.Hour)
	verifier, _ := NewTokenManager("secret-b", time.Hour)

	token, err := issuer.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := verifier.Verify(token); err == nil {
		t.Error("expected error for token signed with a different secret")
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	m, _ := NewTokenManager("test-secret", -time.Minute)
	token, err := m.Generate("user-1", "alice")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := m.Verify(token); err == nil {
		t.Error("expected error for expired token")
	}
}

func TestVerifyRejectsGarbage(t *testing.T) {
	m, _ := NewTokenManager("test-secret", time.Hour)
	for _, token := range []string{"", "not-a-token", strings.Repeat("a.", 3)} {
		if _, err := m.Verify(token); err == nil {
			t.Errorf("expected error for %q", token)
		}
	}
}
