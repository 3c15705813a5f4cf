package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenKind distinguishes access tokens from refresh tokens. Each kind is
// signed with its own secret so a refresh token can never pass for an access
// token even if both leak.
type TokenKind string

const (
	TokenKindAccess  TokenKind = "access"
	TokenKindRefresh TokenKind = "refresh"
)

// Claims defines the structure of the JWT claims.
type Claims struct {
	AdminID     string    `json:"admin_id"`
	Role        string    `json:"role"`
	Permissions []string  `json:"permissions,omitempty"`
	Kind        TokenKind `json:"kind"`
	jwt.RegisteredClaims
}

// GenerateAccessToken creates a short-lived access JWT for an admin.
func GenerateAccessToken(adminID, role string, permissions []string, secretKey string, ttl time.Duration) (string, error) {
	return generate(adminID, role, permissions, TokenKindAccess, secretKey, ttl)
}

// GenerateRefreshToken creates a long-lived refresh JWT. It carries no
// permissions; those are re-read from the admin document on rotation.
func GenerateRefreshToken(adminID string, secretKey string, ttl time.Duration) (string, error) {
	return generate(adminID, "", nil, TokenKindRefresh, secretKey, ttl)
}

func generate(adminID, role string, permissions []string, kind TokenKind, secretKey string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		AdminID:     adminID,
		Role:        role,
		Permissions: permissions,
		Kind:        kind,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   adminID,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign JWT: %w", err)
	}
	return tokenString, nil
}

// ValidateToken verifies a JWT string against the given secret and expected
// kind, returning the claims if valid.
func ValidateToken(tokenString, secretKey string, kind TokenKind) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse JWT: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid JWT")
	}
	if claims.Kind != kind {
		return nil, fmt.Errorf("unexpected token kind %q", claims.Kind)
	}
	return claims, nil
}
