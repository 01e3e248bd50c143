package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventhub/internal/domain"
)

func TestJWTIssuer_Issue(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)

	token, err := issuer.Issue("user-123", "u@example.com", 24*time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Parse and verify claims
	parsed, err := jwt.ParseWithClaims(token, &jwtClaims{}, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	})
	require.NoError(t, err)
	require.True(t, parsed.Valid)
	claims, ok := parsed.Claims.(*jwtClaims)
	require.True(t, ok)
	assert.Equal(t, "user-123", claims.Subject)
	assert.Equal(t, "u@example.com", claims.Email)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	issuer := NewJWTIssuer(secret)
	verifier := NewJWTVerifier(secret)

	t.Run("round trip", func(t *testing.T) {
		token, err := issuer.Issue("user-123", "u@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := verifier.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "user-123", claims.UserID)
		assert.Equal(t, "u@example.com", claims.Email)
	})

	t.Run("forged signature", func(t *testing.T) {
		forged, err := NewJWTIssuer("other-secret").Issue("user-123", "u@example.com", time.Hour)
		require.NoError(t, err)

		claims, err := verifier.Verify(forged)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("expired token", func(t *testing.T) {
		expired, err := issuer.Issue("user-123", "u@example.com", -time.Hour)
		require.NoError(t, err)

		claims, err := verifier.Verify(expired)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("malformed token", func(t *testing.T) {
		claims, err := verifier.Verify("not.a.jwt")
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("wrong signing method", func(t *testing.T) {
		// alg "none" style token must not pass.
		unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "user-123"})
		tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		claims, err := verifier.Verify(tokenString)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Nil(t, claims)
	})

	t.Run("missing subject", func(t *testing.T) {
		noSub := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
			Email: "u@example.com",
		})
		tokenString, err := noSub.SignedString([]byte(secret))
		require.NoError(t, err)

		claims, err := verifier.Verify(tokenString)
		assert.ErrorIs(t, err, domain.ErrInvalidToken)
		assert.Nil(t, claims)
	})
}
