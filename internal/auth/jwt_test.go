package auth

import (
	"testing"
	"time"
)

func TestIssueAndParse(t *testing.T) {
	tokens, err := Issue("user-1", "a@example.com", "A", "user", "messmate", "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}

	claims, err := Parse(tokens.AccessToken, "secret", "messmate")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.Subject != "user-1" || claims.Email != "a@example.com" || claims.Role != "user" {
		t.Errorf("claims = %+v", claims)
	}

	if _, err := Parse(tokens.RefreshToken, "secret", "messmate"); err != nil {
		t.Errorf("refresh token should parse: %v", err)
	}
}

func TestParseRejectsWrongKey(t *testing.T) {
	tokens, err := Issue("user-1", "a@example.com", "A", "user", "messmate", "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(tokens.AccessToken, "other-secret", "messmate"); err == nil {
		t.Error("expected error for wrong signing key")
	}
}

func TestParseRejectsIssuerMismatch(t *testing.T) {
	tokens, err := Issue("user-1", "a@example.com", "A", "user", "someone-else", "secret", time.Minute, time.Hour)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if _, err := Parse(tokens.AccessToken, "secret", "messmate"); err == nil {
		t.Error("expected issuer mismatch error")
	}
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("hunter22")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !CheckPassword(hash, "hunter22") {
		t.Error("correct password rejected")
	}
	if CheckPassword(hash, "hunter23") {
		t.Error("wrong password accepted")
	}
}
