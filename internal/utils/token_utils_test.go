package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func TestOperatorJWT_RoundTrip(t *testing.T) {
	token, err := GenerateOperatorJWT("ops-1", testSecret, time.Hour)
	require.NoError(t, err)

	claims, err := ParseOperatorJWT(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "ops-1", claims.Subject)
	assert.Equal(t, OperatorTokenIssuer, claims.Issuer)
}

func TestOperatorJWT_WrongSecret(t *testing.T) {
	token, err := GenerateOperatorJWT("ops-1", testSecret, time.Hour)
	require.NoError(t, err)

	_, err = ParseOperatorJWT(token, "other")
	assert.ErrorIs(t, err, jwt.ErrTokenSignatureInvalid)
}

func TestOperatorJWT_Expired(t *testing.T) {
	token, err := GenerateOperatorJWT("ops-1", testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = ParseOperatorJWT(token, testSecret)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestOperatorJWT_EmptyOperator(t *testing.T) {
	_, err := GenerateOperatorJWT("", testSecret, time.Hour)
	assert.Error(t, err)
}
