package utils

import (
	"testing"
	"time"

	"github.com/SAP-F-2025/exam-portal-service/internal/models"
)

func TestGenerateAndParseJWT(t *testing.T) {
	user := &models.User{ID: 42, Email: "ada@example.com", Role: models.RoleAdmin}

	token, err := GenerateJWT("secret", time.Hour, user)
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	claims, err := ParseJWT("secret", token)
	if err != nil {
		t.Fatalf("ParseJWT() error = %v", err)
	}
	if claims.UserID != 42 || claims.Email != "ada@example.com" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}
}

func TestParseJWTWrongSecret(t *testing.T) {
	token, err := GenerateJWT("secret", time.Hour, &models.User{ID: 1, Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ParseJWT("other-secret", token); err == nil {
		t.Error("token verified with wrong secret")
	}
}

func TestParseJWTExpired(t *testing.T) {
	token, err := GenerateJWT("secret", -time.Minute, &models.User{ID: 1, Role: models.RoleStudent})
	if err != nil {
		t.Fatalf("GenerateJWT() error = %v", err)
	}

	if _, err := ParseJWT("secret", token); err == nil {
		t.Error("expired token accepted")
	}
}

func TestParseJWTGarbage(t *testing.T) {
	if _, err := ParseJWT("secret", "not.a.token"); err == nil {
		t.Error("garbage token accepted")
	}
}
