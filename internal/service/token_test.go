package service

import (
	"errors"
	"testing"
	"time"

	"github.com/voluntree/backend/config"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		AccessSecret:  "access-secret-for-tests",
		AccessExpiry:  15 * time.Minute,
		RefreshSecret: "refresh-secret-for-tests",
		RefreshExpiry: 7 * 24 * time.Hour,
	}
}

func testUser() *model.User {
	return &model.User{
		ID:       42,
		Username: "alice",
		Email:    "alice@example.com",
		Fullname: "Alice Smith",
	}
}

func TestNewTokenServiceRequiresSecrets(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessSecret = ""
	if _, err := NewTokenService(cfg); err == nil {
		t.Error("expected missing access secret to be rejected")
	}

	cfg = testJWTConfig()
	cfg.RefreshSecret = ""
	if _, err := NewTokenService(cfg); err == nil {
		t.Error("expected missing refresh secret to be rejected")
	}

	cfg = testJWTConfig()
	cfg.RefreshSecret = cfg.AccessSecret
	if _, err := NewTokenService(cfg); err == nil {
		t.Error("expected identical secrets to be rejected")
	}
}

func TestAccessTokenRoundTrip(t *testing.T) {
	svc, err := NewTokenService(testJWTConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}

	claims, err := svc.VerifyAccessToken(token)
	if err != nil {
		t.Fatalf("failed to verify access token: %v", err)
	}
	if claims.UserID != 42 || claims.Username != "alice" || claims.Email != "alice@example.com" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestKeyClassesAreIndependent(t *testing.T) {
	svc, _ := NewTokenService(testJWTConfig())

	refreshToken, err := svc.IssueRefreshToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue refresh token: %v", err)
	}

	// A refresh token must never verify as an access token
	if _, err := svc.VerifyAccessToken(refreshToken); !errors.Is(err, apperrors.ErrInvalidCredential) {
		t.Errorf("expected invalid credential, got %v", err)
	}

	accessToken, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue access token: %v", err)
	}
	if _, err := svc.VerifyRefreshToken(accessToken); !errors.Is(err, apperrors.ErrInvalidCredential) {
		t.Errorf("expected invalid credential, got %v", err)
	}
}

func TestExpiredTokenIsDistinguished(t *testing.T) {
	cfg := testJWTConfig()
	cfg.AccessExpiry = -time.Minute
	svc, _ := NewTokenService(cfg)

	token, err := svc.IssueAccessToken(testUser())
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	_, err = svc.VerifyAccessToken(token)
	if !errors.Is(err, apperrors.ErrExpiredCredential) {
		t.Errorf("expected expired credential, got %v", err)
	}
}

func TestGarbageTokenIsInvalid(t *testing.T) {
	svc, _ := NewTokenService(testJWTConfig())

	if _, err := svc.VerifyAccessToken("not-a-jwt"); !errors.Is(err, apperrors.ErrInvalidCredential) {
		t.Errorf("expected invalid credential, got %v", err)
	}
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint("some-refresh-token")
	b := Fingerprint("some-refresh-token")
	c := Fingerprint("another-refresh-token")

	if !FingerprintEqual(a, b) {
		t.Error("expected identical tokens to have equal fingerprints")
	}
	if FingerprintEqual(a, c) {
		t.Error("expected different tokens to have different fingerprints")
	}
	if len(a) != 64 {
		t.Errorf("expected hex sha256 fingerprint, got length %d", len(a))
	}
}
