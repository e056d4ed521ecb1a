package security

import (
	"strings"
	"testing"
	"time"
)

func TestTokenCodec_SignAndVerifyAccess(t *testing.T) {
	c := NewTestTokenCodec()

	token, exp, err := c.SignAccess("u1", "somchai", "somchai@example.com", "staff", "loc-1")
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if token == "" {
		t.Fatal("access token empty")
	}
	if exp.Before(time.Now()) {
		t.Fatal("expires at in the past")
	}

	claims, err := c.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.UserID != "u1" || claims.Username != "somchai" || claims.Email != "somchai@example.com" {
		t.Errorf("identity claims: got %q %q %q", claims.UserID, claims.Username, claims.Email)
	}
	if claims.Role != "staff" || claims.LocationID != "loc-1" {
		t.Errorf("role/location claims: got %q %q", claims.Role, claims.LocationID)
	}
	if claims.Issuer != Issuer {
		t.Errorf("issuer = %q, want %q", claims.Issuer, Issuer)
	}
}

func TestTokenCodec_AccessWithoutLocation(t *testing.T) {
	c := NewTestTokenCodec()
	token, _, err := c.SignAccess("u1", "admin", "admin@example.com", "admin", "")
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	claims, err := c.VerifyAccess(token)
	if err != nil {
		t.Fatalf("VerifyAccess: %v", err)
	}
	if claims.LocationID != "" {
		t.Errorf("LocationID = %q, want empty", claims.LocationID)
	}
}

func TestTokenCodec_SignAndVerifyRefresh(t *testing.T) {
	c := NewTestTokenCodec()

	token, tokenID, exp, err := c.SignRefresh()
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	if token == "" || tokenID == "" {
		t.Fatal("refresh token or token id empty")
	}
	if exp.Before(time.Now()) {
		t.Fatal("refresh expires at in the past")
	}

	got, err := c.VerifyRefresh(token)
	if err != nil {
		t.Fatalf("VerifyRefresh: %v", err)
	}
	if got != tokenID {
		t.Errorf("VerifyRefresh token id = %q, want %q", got, tokenID)
	}

	// Every refresh token carries a fresh random id.
	_, tokenID2, _, err := c.SignRefresh()
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	if tokenID2 == tokenID {
		t.Error("two refresh tokens share a token id")
	}
}

func TestTokenCodec_SecretIsolation(t *testing.T) {
	c := NewTestTokenCodec()

	access, _, err := c.SignAccess("u1", "somchai", "s@example.com", "staff", "")
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	refresh, _, _, err := c.SignRefresh()
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}

	if _, err := c.VerifyRefresh(access); err != ErrInvalidToken {
		t.Errorf("access token passed VerifyRefresh: err = %v", err)
	}
	if _, err := c.VerifyAccess(refresh); err != ErrInvalidToken {
		t.Errorf("refresh token passed VerifyAccess: err = %v", err)
	}
}

func TestTokenCodec_TamperedToken(t *testing.T) {
	c := NewTestTokenCodec()
	token, _, _, err := c.SignRefresh()
	if err != nil {
		t.Fatalf("SignRefresh: %v", err)
	}
	tampered := tamper(token)
	if _, err := c.VerifyRefresh(tampered); err != ErrInvalidToken {
		t.Errorf("tampered token: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenCodec_ExpiredToken(t *testing.T) {
	c := NewTokenCodec(testAccessSecret, testRefreshSecret, -time.Minute, -time.Minute)
	access, _, err := c.SignAccess("u1", "somchai", "s@example.com", "staff", "")
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := c.VerifyAccess(access); err != ErrInvalidToken {
		t.Errorf("expired token: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenCodec_WrongSecret(t *testing.T) {
	c := NewTestTokenCodec()
	other := NewTokenCodec("another-access-secret", "another-refresh-secret", time.Minute, time.Minute)

	access, _, err := other.SignAccess("u1", "somchai", "s@example.com", "staff", "")
	if err != nil {
		t.Fatalf("SignAccess: %v", err)
	}
	if _, err := c.VerifyAccess(access); err != ErrInvalidToken {
		t.Errorf("wrong secret: want ErrInvalidToken, got %v", err)
	}
}

func TestTokenCodec_VerifyGarbage(t *testing.T) {
	c := NewTestTokenCodec()
	if _, err := c.VerifyAccess("not-a-token"); err != ErrInvalidToken {
		t.Errorf("VerifyAccess garbage: want ErrInvalidToken, got %v", err)
	}
	if _, err := c.VerifyRefresh(""); err != ErrInvalidToken {
		t.Errorf("VerifyRefresh empty: want ErrInvalidToken, got %v", err)
	}
}

// tamper flips one character in the token's payload segment.
func tamper(token string) string {
	parts := strings.Split(token, ".")
	payload := []byte(parts[1])
	i := len(payload) / 2
	if payload[i] == 'A' {
		payload[i] = 'B'
	} else {
		payload[i] = 'A'
	}
	parts[1] = string(payload)
	return strings.Join(parts, ".")
}
