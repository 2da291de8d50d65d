package supabase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const secret = "super-secret-jwt-token-with-at-least-32-characters"

func sign(t *testing.T, method jwt.SigningMethod, key interface{}, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestVerifyToken(t *testing.T) {
	verifier, err := NewJWTVerifier(secret)
	require.NoError(t, err)

	token := sign(t, jwt.SigningMethodHS256, []byte(secret), Claims{
		Email: "ana@email.com",
		Role:  "authenticated",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	uid, err := verifier.VerifyToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", uid)
}

func TestVerifyToken_Rejects(t *testing.T) {
	verifier, err := NewJWTVerifier(secret)
	require.NoError(t, err)

	expired := sign(t, jwt.SigningMethodHS256, []byte(secret), Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	wrongKey := sign(t, jwt.SigningMethodHS256, []byte("another-secret"), Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})
	noSubject := sign(t, jwt.SigningMethodHS256, []byte(secret), Claims{})
	unsigned := sign(t, jwt.SigningMethodNone, jwt.UnsafeAllowNoneSignatureType, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-1"},
	})

	for name, token := range map[string]string{
		"expired":    expired,
		"wrong key":  wrongKey,
		"no subject": noSubject,
		"alg none":   unsigned,
		"garbage":    "not-a-jwt",
	} {
		_, err := verifier.VerifyToken(context.Background(), token)
		assert.Error(t, err, name)
	}

	_, err = NewJWTVerifier("")
	assert.Error(t, err)
}
