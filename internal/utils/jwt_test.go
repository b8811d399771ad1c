package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManagerRoundTrip(t *testing.T) {
	m := TokenManager{
		Secret:         []byte("test-secret"),
		Issuer:         "luwakpos",
		AccessTokenTTL: time.Minute,
		AdminRole:      "administrador",
	}

	token, ttl, err := m.Issue("42", "admin@luwak.local", "administrador")
	require.NoError(t, err)
	assert.Equal(t, time.Minute, ttl)

	claims, result := m.Verify(token)
	require.Equal(t, ResultValid, result)
	assert.Equal(t, "42", claims.Subject)
	assert.Equal(t, "admin@luwak.local", claims.Email)
	assert.True(t, claims.IsAdmin)
}

func TestTokenManagerNonAdminRole(t *testing.T) {
	m := TokenManager{Secret: []byte("test-secret"), AdminRole: "administrador"}

	token, _, err := m.Issue("7", "mesero@luwak.local", "empleado")
	require.NoError(t, err)

	claims, result := m.Verify(token)
	require.Equal(t, ResultValid, result)
	assert.False(t, claims.IsAdmin)
}

func TestTokenManagerExpired(t *testing.T) {
	m := TokenManager{
		Secret:         []byte("test-secret"),
		AccessTokenTTL: -time.Minute,
	}

	token, _, err := m.Issue("42", "user@luwak.local", "empleado")
	require.NoError(t, err)

	claims, result := m.Verify(token)
	assert.Equal(t, ResultExpired, result)
	assert.Nil(t, claims)
}

func TestTokenManagerMissingStates(t *testing.T) {
	m := TokenManager{Secret: []byte("test-secret"), AccessTokenTTL: time.Minute}

	token, _, err := m.Issue("42", "user@luwak.local", "empleado")
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-jwt"},
		{"tampered", token[:len(token)-2] + "xx"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, result := m.Verify(tt.token)
			assert.Equal(t, ResultMissing, result)
			assert.Nil(t, claims)
		})
	}
}

// An expired token signed with a different key must not leak its expiry: a
// bad signature always reads as missing, never as expired.
func TestTokenManagerForeignExpiredTokenIsMissing(t *testing.T) {
	foreign := TokenManager{Secret: []byte("other-secret"), AccessTokenTTL: -time.Minute}
	token, _, err := foreign.Issue("42", "user@luwak.local", "empleado")
	require.NoError(t, err)

	m := TokenManager{Secret: []byte("test-secret")}
	_, result := m.Verify(token)
	assert.Equal(t, ResultMissing, result)
}
