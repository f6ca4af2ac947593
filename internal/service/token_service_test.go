package service

import (
	"errors"
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if userID != 42 {
		t.Errorf("expected user 42, got %d", userID)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Issue(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = NewTokenService("secret-b", time.Hour).Verify(token)
	if !errors.Is(err, ErrInvalidBearerToken) {
		t.Fatalf("expected ErrInvalidBearerToken, got %v", err)
	}
}

func TestTokenExpired(t *testing.T) {
	svc := NewTokenService("test-secret", -time.Minute)

	token, err := svc.Issue(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.Verify(token)
	if !errors.Is(err, ErrInvalidBearerToken) {
		t.Fatalf("expected ErrInvalidBearerToken for expired token, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	if _, err := svc.Verify("not-a-token"); !errors.Is(err, ErrInvalidBearerToken) {
		t.Fatalf("expected ErrInvalidBearerToken, got %v", err)
	}
}
