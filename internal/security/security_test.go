package security

import "testing"

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if hash == "correct horse battery" {
		t.Fatal("hash must not equal the plaintext")
	}

	if !CheckPassword("correct horse battery", hash) {
		t.Error("expected password to verify")
	}
	if CheckPassword("wrong password", hash) {
		t.Error("expected wrong password to fail")
	}
}

func TestCSRFTokenRoundTrip(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	token, err := gen.GenerateToken("session-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !gen.ValidateToken("session-123", token) {
		t.Error("expected token to validate for its session")
	}
	if gen.ValidateToken("session-456", token) {
		t.Error("expected token to fail for another session")
	}
	if gen.ValidateToken("session-123", "tampered") {
		t.Error("expected tampered token to fail")
	}
}

func TestCSRFTokenEmptySession(t *testing.T) {
	gen := NewCSRFGenerator("test-secret")

	if _, err := gen.GenerateToken(""); err == nil {
		t.Error("expected error for empty session ID")
	}
	if gen.ValidateToken("", "anything") {
		t.Error("expected validation to fail for empty session ID")
	}
}

func TestCSRFDifferentSecrets(t *testing.T) {
	a := NewCSRFGenerator("secret-a")
	b := NewCSRFGenerator("secret-b")

	token, err := a.GenerateToken("session-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if b.ValidateToken("session-123", token) {
		t.Error("expected token from another secret to fail")
	}
}

func TestGenerateSessionIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		id := GenerateSessionID()
		if seen[id] {
			t.Fatal("duplicate session ID generated")
		}
		seen[id] = true
	}
}
