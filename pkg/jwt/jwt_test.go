package jwt

import (
	"testing"
	"time"

	"healthsphere-api/config"

	"github.com/google/uuid"
)

func newTestService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidate(t *testing.T) {
	svc := newTestService()
	subjectID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(subjectID, "user@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned %v", err)
	}
	if tokenID == "" {
		t.Fatal("empty token ID")
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned %v", err)
	}
	if claims.SubjectID != subjectID {
		t.Fatalf("subject ID = %s, want %s", claims.SubjectID, subjectID)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("email = %q", claims.Email)
	}
	if claims.RoleID != 3 {
		t.Fatalf("role ID = %d, want 3", claims.RoleID)
	}
	if claims.TokenType != AccessToken {
		t.Fatalf("token type = %q, want access", claims.TokenType)
	}
	if claims.TokenID != tokenID {
		t.Fatalf("token ID = %q, want %q", claims.TokenID, tokenID)
	}
}

func TestRefreshTokenType(t *testing.T) {
	svc := newTestService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "user@example.com", 2)
	if err != nil {
		t.Fatalf("GenerateRefreshToken returned %v", err)
	}

	claims, err := svc.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken returned %v", err)
	}
	if claims.TokenType != RefreshToken {
		t.Fatalf("token type = %q, want refresh", claims.TokenType)
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	svc := newTestService()
	token, _, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned %v", err)
	}

	other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Minute})
	if _, err := other.ValidateToken(token); err == nil {
		t.Fatal("token signed with a different secret validated")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{
		Secret:       "test-secret",
		AccessExpiry: -time.Minute,
	})
	token, _, err := svc.GenerateAccessToken(uuid.New(), "user@example.com", 3)
	if err != nil {
		t.Fatalf("GenerateAccessToken returned %v", err)
	}

	if _, err := svc.ValidateToken(token); err == nil {
		t.Fatal("expired token validated")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	svc := newTestService()
	if _, err := svc.ValidateToken("not-a-token"); err == nil {
		t.Fatal("garbage token validated")
	}
}
