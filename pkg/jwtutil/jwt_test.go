package jwtutil

import "testing"

func TestTokenRoundTrip(t *testing.T) {
	j := New(&Config{SigningKey: "test-secret", ExpirationHours: 1})

	token, err := j.GenerateToken("user-1", "shop@example.com", "retailer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := j.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "user-1" || claims.Email != "shop@example.com" || claims.Role != "retailer" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestValidateRejectsWrongKey(t *testing.T) {
	issuer := New(&Config{SigningKey: "key-a", ExpirationHours: 1})
	verifier := New(&Config{SigningKey: "key-b", ExpirationHours: 1})

	token, err := issuer.GenerateToken("user-1", "shop@example.com", "retailer")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := verifier.ValidateToken(token); err == nil {
		t.Error("token signed with a different key must not validate")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	j := New(&Config{SigningKey: "test-secret", ExpirationHours: 1})
	if _, err := j.ValidateToken("not-a-token"); err == nil {
		t.Error("garbage input must not validate")
	}
}

func TestGenerateWithoutConfig(t *testing.T) {
	j := &JWTUtil{}
	if _, err := j.GenerateToken("user-1", "shop@example.com", "retailer"); err == nil {
		t.Error("missing config must be an error")
	}
}
