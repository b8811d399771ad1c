package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// VerifyResult is the tri-state outcome of access-token verification.
// Anything that is not a clean expiry collapses to ResultMissing so a
// tampered token is indistinguishable from an absent one and forces a full
// re-login instead of a refresh cycle.
type VerifyResult int

const (
	ResultMissing VerifyResult = iota
	ResultExpired
	ResultValid
)

type AccessClaims struct {
	Email   string `json:"email"`
	Role    string `json:"role"`
	IsAdmin bool   `json:"isAdmin"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies self-contained access tokens. Verification
// needs no server lookup; the short lifetime bounds exposure.
type TokenManager struct {
	Secret         []byte
	Issuer         string
	AccessTokenTTL time.Duration

	// AdminRole is the schema role whose holders get the admin claim.
	AdminRole string
}

func (m TokenManager) Issue(subject string, email string, role string) (string, time.Duration, error) {
	ttl := m.AccessTokenTTL
	if ttl == 0 {
		ttl = 15 * time.Minute
	}
	now := time.Now()
	claims := AccessClaims{
		Email:   email,
		Role:    role,
		IsAdmin: role == m.AdminRole,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.Issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.Secret)
	if err != nil {
		return "", 0, err
	}
	return signed, ttl, nil
}

// Verify classifies a presented token. An empty token is ResultMissing; a
// token whose signature checks out but whose window has elapsed is
// ResultExpired; every other failure is ResultMissing as well.
func (m TokenManager) Verify(tokenString string) (*AccessClaims, VerifyResult) {
	if tokenString == "" {
		return nil, ResultMissing
	}
	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return m.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ResultExpired
		}
		return nil, ResultMissing
	}
	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid {
		return nil, ResultMissing
	}
	return claims, ResultValid
}
