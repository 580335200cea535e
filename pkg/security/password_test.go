package security_test

import (
	"strings"
	"testing"

	"github.com/smoralesdev/cartaqr-backend/pkg/security"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := security.HashPassword("very-secure-password")
	if err != nil {
		t.Fatalf("HashPassword returned error: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword returned empty string")
	}
	if hash == "very-secure-password" {
		t.Fatal("HashPassword returned the plaintext")
	}

	if !security.VerifyPassword("very-secure-password", hash) {
		t.Fatal("VerifyPassword failed for the correct password")
	}
	if security.VerifyPassword("bogus-password", hash) {
		t.Fatal("VerifyPassword returned true for incorrect password")
	}
}

func TestHashPasswordRejectsEmpty(t *testing.T) {
	if _, err := security.HashPassword(""); err == nil {
		t.Fatal("expected error for empty password")
	}
}

func TestVerifyPasswordBadHash(t *testing.T) {
	if security.VerifyPassword("irrelevant", "not-a-hash") {
		t.Fatal("expected false for malformed hash")
	}
}

func TestGenerateInvitationToken(t *testing.T) {
	first, err := security.GenerateInvitationToken()
	if err != nil {
		t.Fatalf("GenerateInvitationToken returned error: %v", err)
	}
	if len(first) != 64 {
		t.Fatalf("expected 64 hex characters, got %d", len(first))
	}
	if strings.ToLower(first) != first {
		t.Fatal("expected lowercase hex token")
	}

	second, err := security.GenerateInvitationToken()
	if err != nil {
		t.Fatalf("GenerateInvitationToken returned error: %v", err)
	}
	if first == second {
		t.Fatal("tokens should not repeat")
	}
}
