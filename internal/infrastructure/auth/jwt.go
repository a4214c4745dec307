package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/quiniela-inc/quiniela/internal/shared/authorization"
	"github.com/quiniela-inc/quiniela/internal/shared/biztime"
)

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims carries the authenticated identity. TenantSID is empty for
// platform superadmins, who are not bound to a tenant.
type Claims struct {
	UserID    uint                   `json:"user_id"`
	UserSID   string                 `json:"user_sid"`
	TenantSID string                 `json:"tenant_sid,omitempty"`
	Role      authorization.UserRole `json:"role"`
	TokenType TokenType              `json:"token_type"`
	jwt.RegisteredClaims
}

type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

// JWTService signs and verifies HS256 tokens.
type JWTService struct {
	secret           []byte
	accessExpMinutes int
	refreshExpDays   int
}

// NewJWTService creates a new JWTService
func NewJWTService(secret string, accessExpMinutes, refreshExpDays int) *JWTService {
	return &JWTService{
		secret:           []byte(secret),
		accessExpMinutes: accessExpMinutes,
		refreshExpDays:   refreshExpDays,
	}
}

// Generate issues an access/refresh token pair for the identity.
func (s *JWTService) Generate(userID uint, userSID, tenantSID string, role authorization.UserRole) (*TokenPair, error) {
	now := biztime.NowUTC()

	accessTokenString, err := s.sign(userID, userSID, tenantSID, role, TokenTypeAccess,
		now, now.Add(time.Duration(s.accessExpMinutes)*time.Minute))
	if err != nil {
		return nil, fmt.Errorf("failed to sign access token: %w", err)
	}

	refreshTokenString, err := s.sign(userID, userSID, tenantSID, role, TokenTypeRefresh,
		now, now.Add(time.Duration(s.refreshExpDays)*24*time.Hour))
	if err != nil {
		return nil, fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessTokenString,
		RefreshToken: refreshTokenString,
		ExpiresIn:    int64(s.accessExpMinutes * 60),
	}, nil
}

func (s *JWTService) sign(userID uint, userSID, tenantSID string, role authorization.UserRole, tokenType TokenType, now, exp time.Time) (string, error) {
	claims := &Claims{
		UserID:    userID,
		UserSID:   userSID,
		TenantSID: tenantSID,
		Role:      role,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify parses and validates a token string.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("invalid token")
}

// RefreshAccessToken issues a new access token from refresh token claims.
func (s *JWTService) RefreshAccessToken(claims *Claims) (string, error) {
	if claims.TokenType != TokenTypeRefresh {
		return "", fmt.Errorf("refresh requires a refresh token")
	}

	now := biztime.NowUTC()
	return s.sign(claims.UserID, claims.UserSID, claims.TenantSID, claims.Role, TokenTypeAccess,
		now, now.Add(time.Duration(s.accessExpMinutes)*time.Minute))
}
