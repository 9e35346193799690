package auth

import (
	"strings"
	"testing"
	"time"
)

func TestSignAndParse(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "moviebot", Duration: time.Hour}

	u := &User{ID: "u-1", Username: "alice", TokenVersion: 3}
	token, exp, err := ts.Sign(u)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if time.Until(exp) <= 0 {
		t.Fatalf("expiry in the past: %v", exp)
	}

	claims, err := ts.Parse(token)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if claims.UserID != "u-1" || claims.Username != "alice" || claims.TokenVersion != 3 {
		t.Errorf("unexpected claims: %+v", claims)
	}
	if claims.Issuer != "moviebot" {
		t.Errorf("issuer = %q", claims.Issuer)
	}
}

func TestParseRejectsWrongSecret(t *testing.T) {
	signer := TokenService{Secret: []byte("secret-a"), Issuer: "moviebot", Duration: time.Hour}
	verifier := TokenService{Secret: []byte("secret-b"), Issuer: "moviebot", Duration: time.Hour}

	token, _, err := signer.Sign(&User{ID: "u-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if _, err := verifier.Parse(token); err == nil {
		t.Fatal("token signed with another secret must not parse")
	}
}

func TestParseRejectsExpired(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "moviebot", Duration: -time.Minute}

	token, _, err := ts.Sign(&User{ID: "u-1"})
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	_, err = ts.Parse(token)
	if err == nil {
		t.Fatal("expired token must not parse")
	}
	if !strings.Contains(err.Error(), "expired") {
		t.Logf("note: error does not mention expiry: %v", err)
	}
}

func TestParseRejectsGarbage(t *testing.T) {
	ts := TokenService{Secret: []byte("test-secret"), Issuer: "moviebot", Duration: time.Hour}
	if _, err := ts.Parse("not-a-token"); err == nil {
		t.Fatal("garbage must not parse")
	}
}
