package service

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/voluntree/backend/config"
	apperrors "github.com/voluntree/backend/internal/errors"
	"github.com/voluntree/backend/internal/model"
)

// AccessClaims is the payload of short-lived access tokens.
type AccessClaims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Fullname string `json:"fullname"`
	jwt.RegisteredClaims
}

// RefreshClaims carries only the user id; everything else is looked up at
// refresh time.
type RefreshClaims struct {
	UserID uint `json:"id"`
	jwt.RegisteredClaims
}

// TokenService signs and verifies the two JWT classes. Access and refresh
// tokens use independent secrets, so one class can never verify as the other.
type TokenService struct {
	accessSecret  []byte
	accessExpiry  time.Duration
	refreshSecret []byte
	refreshExpiry time.Duration
}

func NewTokenService(cfg config.JWTConfig) (*TokenService, error) {
	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("token service requires both ACCESS_TOKEN_SECRET and REFRESH_TOKEN_SECRET")
	}
	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("access and refresh token secrets must differ")
	}

	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		accessExpiry:  cfg.AccessExpiry,
		refreshSecret: []byte(cfg.RefreshSecret),
		refreshExpiry: cfg.RefreshExpiry,
	}, nil
}

// IssueAccessToken signs a short-lived token embedding the user's public
// identity fields.
func (s *TokenService) IssueAccessToken(user *model.User) (string, error) {
	now := time.Now()
	claims := AccessClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Fullname: user.Fullname,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.accessSecret)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, nil
}

// IssueRefreshToken signs a long-lived token carrying only the user id.
func (s *TokenService) IssueRefreshToken(user *model.User) (string, error) {
	now := time.Now()
	claims := RefreshClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.refreshExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.refreshSecret)
	if err != nil {
		return "", apperrors.WrapError(apperrors.ErrInternal, err)
	}
	return signed, nil
}

// VerifyAccessToken validates signature and lifetime against the access
// secret and returns the embedded claims.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	claims := &AccessClaims{}
	if err := s.verify(tokenString, claims, s.accessSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

// VerifyRefreshToken validates signature and lifetime against the refresh
// secret and returns the embedded claims.
func (s *TokenService) VerifyRefreshToken(tokenString string) (*RefreshClaims, error) {
	claims := &RefreshClaims{}
	if err := s.verify(tokenString, claims, s.refreshSecret); err != nil {
		return nil, err
	}
	return claims, nil
}

func (s *TokenService) verify(tokenString string, claims jwt.Claims, secret []byte) error {
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return apperrors.WrapError(apperrors.ErrExpiredCredential, err)
		}
		return apperrors.WrapError(apperrors.ErrInvalidCredential, err)
	}
	if !token.Valid {
		return apperrors.ErrInvalidCredential
	}
	return nil
}

// Fingerprint derives the stored form of a refresh token. Only this digest
// is persisted, never the token itself.
func Fingerprint(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// FingerprintEqual compares two fingerprints in constant time.
func FingerprintEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
