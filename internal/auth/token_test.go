package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("test-secret", time.Hour)

	token, err := svc.GenerateToken("kiosk-a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.KioskID != "kiosk-a" {
		t.Fatalf("expected kiosk id in claims, got %q", claims.KioskID)
	}
	if claims.Role != RoleOperator {
		t.Fatalf("expected operator role, got %q", claims.Role)
	}
}

func TestTokenRejectsWrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).GenerateToken("kiosk-a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := NewTokenService("secret-b", time.Hour).ValidateToken(token); err == nil {
		t.Fatal("expected validation failure with a different secret")
	}
}

func TestTokenRejectsExpired(t *testing.T) {
	svc := NewTokenService("secret", time.Nanosecond)
	token, err := svc.GenerateToken("kiosk-a")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	time.Sleep(10 * time.Millisecond)
	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}

func TestTokenRequiresKioskID(t *testing.T) {
	if _, err := NewTokenService("secret", time.Hour).GenerateToken(""); err == nil {
		t.Fatal("expected error for empty kiosk id")
	}
}

func TestPinVerifier(t *testing.T) {
	hash, err := HashPin("2580")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	verifier, err := NewBcryptPinVerifier(hash)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	if err := verifier.Verify("2580"); err != nil {
		t.Fatalf("expected matching pin to verify, got %v", err)
	}
	if err := verifier.Verify("0000"); err == nil {
		t.Fatal("expected wrong pin to fail")
	}
	if _, err := NewBcryptPinVerifier(""); err == nil {
		t.Fatal("expected empty hash to be rejected")
	}
}
