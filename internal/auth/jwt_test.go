package auth

import (
	"strings"
	"testing"

	"github.com/golang-jwt/jwt/v5"
)

func parseClaims(t *testing.T, mgr *JWTManager, token string) *Claims {
	t.Helper()
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (any, error) {
		return mgr.secret, nil
	})
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		t.Fatalf("expected valid claims, got %+v (valid=%v)", parsed.Claims, parsed.Valid)
	}
	return claims
}

func TestGenerateRefreshTokenCarriesSubject(t *testing.T) {
	mgr := NewJWTManager("test-secret-key-123")
	token, err := mgr.GenerateRefreshToken("game-seed-1-player-0")
	if err != nil {
		t.Fatalf("generate refresh token: %v", err)
	}
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if strings.Count(token, ".") != 2 {
		t.Errorf("expected a three-part JWT, got %q", token)
	}

	claims := parseClaims(t, mgr, token)
	if claims.UserID != "game-seed-1-player-0" {
		t.Errorf("expected user_id=game-seed-1-player-0, got %s", claims.UserID)
	}
	if claims.Subject != "game-seed-1-player-0" {
		t.Errorf("expected subject=game-seed-1-player-0, got %s", claims.Subject)
	}
	if claims.ExpiresAt == nil || claims.IssuedAt == nil {
		t.Fatal("expected both ExpiresAt and IssuedAt to be set")
	}
	if !claims.ExpiresAt.After(claims.IssuedAt.Time) {
		t.Errorf("expected expiry after issued-at, got exp=%v iat=%v", claims.ExpiresAt, claims.IssuedAt)
	}
}

func TestGenerateRefreshTokenWrongSecretFailsToParse(t *testing.T) {
	mgr1 := NewJWTManager("secret-one")
	mgr2 := NewJWTManager("secret-two")

	token, err := mgr1.GenerateRefreshToken("player-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	_, err = jwt.ParseWithClaims(token, &Claims{}, func(tok *jwt.Token) (any, error) {
		return mgr2.secret, nil
	})
	if err == nil {
		t.Error("expected parsing to fail with the wrong secret")
	}
}

func TestDifferentSubjectsGetDifferentTokens(t *testing.T) {
	mgr := NewJWTManager("test-secret")
	t1, err := mgr.GenerateRefreshToken("game-seed-1-player-0")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	t2, err := mgr.GenerateRefreshToken("game-seed-1-player-1")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if t1 == t2 {
		t.Error("different subjects should get different tokens")
	}
}
