// Package auth issues and verifies the admin access token that gates the
// admin panel. The token is created out-of-band (cmd/admintoken) with the
// configured HMAC secret; holding it is what "admin" means locally.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/affiliatepro/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the standard claims plus the granted role.
type Claims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// GenerateAdminToken signs an HS256 token for subject with the admin role.
func GenerateAdminToken(subject string, secretKey []byte, validity time.Duration) (string, error) {
	if len(secretKey) == 0 {
		return "", common.ErrAdminDisabled
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validity)),
		},
		Role: common.AdminRole,
	})
	return token.SignedString(secretKey)
}

// VerifyAdminToken checks signature, expiry and role and returns the subject.
// Every failure is reported as common.ErrInvalidToken (wrapping the cause).
func VerifyAdminToken(tokenString string, secretKey []byte) (string, error) {
	if len(secretKey) == 0 {
		return "", common.ErrAdminDisabled
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, err)
	}
	if !token.Valid {
		return "", common.ErrInvalidToken
	}
	if claims.Role != common.AdminRole {
		return "", fmt.Errorf("%w: %w", common.ErrInvalidToken, errors.New("missing admin role"))
	}
	return claims.Subject, nil
}
