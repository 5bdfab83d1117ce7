package utils

import (
	"fmt"
	"strings"
	"time"

	"roundtable-api/core/config"
	"roundtable-api/core/constants"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what the auth provider puts in an access token.
type TokenClaims struct {
	UserID string `json:"uid"`
	Email  string `json:"email,omitempty"`
	Scope  string `json:"scope"`
	jwt.RegisteredClaims
}

func jwtSettings() (string, string, error) {
	cfg, ok := config.GetSafe()
	if !ok || cfg.JWT.Secret == "" {
		return "", "", fmt.Errorf("jwt secret not configured")
	}
	return cfg.JWT.Secret, cfg.JWT.Issuer, nil
}

// GenerateToken signs an HS256 access token. Used by seeding tools and tests.
func GenerateToken(userID, email string, ttl time.Duration) (string, error) {
	secret, issuer, err := jwtSettings()
	if err != nil {
		return "", err
	}

	now := time.Now()
	claims := TokenClaims{
		UserID: userID,
		Email:  email,
		Scope:  constants.ScopeTokenAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

func ValidateAndParseToken(tokenString string) (*TokenClaims, error) {
	secret, issuer, err := jwtSettings()
	if err != nil {
		return nil, err
	}

	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	if claims.Scope != constants.ScopeTokenAccess {
		return nil, fmt.Errorf("unexpected token scope %q", claims.Scope)
	}
	if claims.UserID == "" {
		return nil, fmt.Errorf("token has no user id")
	}
	return claims, nil
}

// GetTokenFromHeader extracts the bearer token; "" when absent or malformed.
func GetTokenFromHeader(header string) string {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
