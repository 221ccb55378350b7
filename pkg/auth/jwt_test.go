package auth

import (
	"testing"
	"time"
)

func TestParseRoundTrip(t *testing.T) {
	tok, err := NewToken("u-1", "a@b.com", RoleCustomer, "s3cret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}

	claims, err := Parse(tok, "s3cret")
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.ID != "u-1" || claims.Email != "a@b.com" || claims.Role != RoleCustomer {
		t.Fatalf("claims = %+v", claims)
	}
	if !claims.KnownRole() {
		t.Fatal("customer should be a known role")
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	tok, err := NewToken("u-1", "a@b.com", RoleAdmin, "s3cret", time.Hour)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if _, err := Parse(tok, "other"); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	tok, err := NewToken("u-1", "a@b.com", RoleAdmin, "s3cret", -time.Minute)
	if err != nil {
		t.Fatalf("NewToken: %v", err)
	}
	if _, err := Parse(tok, "s3cret"); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	if _, err := Parse("not-a-token", "s3cret"); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestKnownRole(t *testing.T) {
	c := &Claims{Role: "driver"}
	if c.KnownRole() {
		t.Fatal("driver should not be a known role")
	}
}
