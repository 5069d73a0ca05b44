package auth

import (
	"testing"

	"posOrderManagement/internal/testutil"
)

const testSecret = "test-secret"

func TestParseBearer_ValidToken(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "alice", "cashier")
	p, err := ParseBearer("Bearer "+tok, testSecret)
	if err != nil {
		t.Fatalf("ParseBearer: %v", err)
	}
	if p.Name != "alice" || p.Kind != KindCashier {
		t.Fatalf("principal mismatch: %+v", p)
	}
}

func TestParseBearer_MissingHeader(t *testing.T) {
	if _, err := ParseBearer("", testSecret); err == nil {
		t.Fatalf("expected error for missing header")
	}
}

func TestParseBearer_InvalidScheme(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "bob", "admin")
	if _, err := ParseBearer("Basic "+tok, testSecret); err == nil {
		t.Fatalf("expected error for non-Bearer scheme")
	}
}

func TestParseJWT_WrongSecret(t *testing.T) {
	tok := testutil.GenerateJWTHS256(t, testSecret, "bob", "admin")
	if _, err := parseJWT(tok, "wrong"); err == nil {
		t.Fatalf("expected error for wrong secret")
	}
}

func TestParseJWT_ClaimsValidation(t *testing.T) {
	// Missing name/kind -> invalid
	tok := testutil.GenerateJWTHS256(t, testSecret, "", "")
	if _, err := parseJWT(tok, testSecret); err == nil {
		t.Fatalf("expected invalid claims error")
	}
}
