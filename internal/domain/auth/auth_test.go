package auth

import (
	"testing"
	"time"
)

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "emp-1", RoleName: RoleAdmin}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	claims, err := ParseToken("secret", token)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if claims.UserID != "emp-1" || claims.RoleName != RoleAdmin {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestParseTokenRejectsWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "emp-1", RoleName: RoleEmployee}, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("other", token); err == nil {
		t.Fatal("expected parse failure with wrong secret")
	}
}

func TestParseTokenRejectsExpired(t *testing.T) {
	token, err := GenerateToken("secret", Claims{UserID: "emp-1"}, -time.Minute)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := ParseToken("secret", token); err == nil {
		t.Fatal("expected parse failure for expired token")
	}
}
