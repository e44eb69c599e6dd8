package jwt

import (
	"errors"
	"testing"
)

func TestAccessTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken("u1", "ali", "AGENT", "sess-1", "secret", 15)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ValidateAccessToken(token, "secret")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.UserID != "u1" || claims.SessionID != "sess-1" || claims.Role != "AGENT" {
		t.Errorf("unexpected claims: %+v", claims)
	}

	if _, err := ValidateAccessToken(token, "other"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("wrong secret: got %v, want ErrTokenInvalid", err)
	}
}

func TestExpiredToken(t *testing.T) {
	token, err := GenerateAccessToken("u1", "ali", "AGENT", "sess-1", "secret", -1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ValidateAccessToken(token, "secret"); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("got %v, want ErrTokenExpired", err)
	}
}

func TestRefreshToken(t *testing.T) {
	token, err := GenerateRefreshToken("u1", "sess-1", "refresh", 7)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	claims, err := ValidateRefreshToken(token, "refresh")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.SessionID != "sess-1" {
		t.Errorf("SessionID = %q", claims.SessionID)
	}
}
