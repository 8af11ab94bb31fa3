package auth

import (
	"testing"

	"crane-backend/internal/config"
	"crane-backend/internal/models"
)

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret-pass" {
		t.Fatal("hash must not equal the plaintext")
	}
	if !VerifyPassword(hash, "s3cret-pass") {
		t.Error("correct password should verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password must not verify")
	}
}

func testJWTManager(expirationHours int) *JWTManager {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-key"
	cfg.JWT.ExpirationHours = expirationHours
	cfg.JWT.Issuer = "crane-backend-test"
	return NewJWTManager(cfg)
}

func TestJWTRoundTrip(t *testing.T) {
	mgr := testJWTManager(24)
	user := &models.User{ID: 7, Email: "admin@crane.local", Role: "admin", IsActive: true}

	token, err := mgr.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := mgr.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != 7 || claims.Email != "admin@crane.local" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
	if !claims.IsActive {
		t.Error("is_active should survive the round trip")
	}
}

func TestJWTRejectsExpired(t *testing.T) {
	mgr := testJWTManager(-1)
	token, err := mgr.GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}
	if _, err := mgr.ValidateToken(token); err == nil {
		t.Error("expired token should be rejected")
	}
}

func TestJWTRejectsWrongSecret(t *testing.T) {
	token, err := testJWTManager(1).GenerateToken(&models.User{ID: 1, Email: "a@b.c", Role: "admin"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	other := &config.Config{}
	other.JWT.Secret = "a-different-secret"
	other.JWT.ExpirationHours = 1
	if _, err := NewJWTManager(other).ValidateToken(token); err == nil {
		t.Error("token signed with another secret should be rejected")
	}
}

func TestJWTRejectsGarbage(t *testing.T) {
	if _, err := testJWTManager(1).ValidateToken("not.a.token"); err == nil {
		t.Error("malformed token should be rejected")
	}
}
