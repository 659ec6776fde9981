package auth

import (
	"testing"
	"time"

	"github.com/erp/erpapp/internal/infrastructure/config"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSigner() *JWTSigner {
	return NewJWTSigner(config.JWTConfig{
		Secret: "test-secret-key-at-least-32-chars",
		Issuer: "test-issuer",
	})
}

func TestJWTSigner_IssueAndVerify(t *testing.T) {
	s := newTestSigner()

	token, expiresAt, err := s.Issue("alice", "admin", 30*time.Minute)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(30*time.Minute), expiresAt, 2*time.Second)

	claims, err := s.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
	assert.Equal(t, expiresAt.Unix(), claims.GetExpiresAtTime().Unix())
}

func TestJWTSigner_UniqueTokenIDs(t *testing.T) {
	s := newTestSigner()
	t1, _, err := s.Issue("alice", "admin", time.Minute)
	require.NoError(t, err)
	t2, _, err := s.Issue("alice", "admin", time.Minute)
	require.NoError(t, err)
	assert.NotEqual(t, t1, t2)
}

func TestJWTSigner_VerifyRejects(t *testing.T) {
	s := newTestSigner()

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-time.Hour)
		expired := &JWTSigner{secret: s.secret, issuer: s.issuer, now: func() time.Time { return past }}
		token, _, err := expired.Issue("alice", "admin", time.Minute)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTSigner(config.JWTConfig{Secret: "another-secret-key-at-least-32-chars"})
		token, _, err := other.Issue("alice", "admin", time.Minute)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("none algorithm", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": "alice", "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing subject", func(t *testing.T) {
		token, _, err := s.Issue("", "admin", time.Minute)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("missing expiry", func(t *testing.T) {
		claims := jwt.MapClaims{"sub": "alice"}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
		require.NoError(t, err)

		_, err = s.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := s.Verify("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
