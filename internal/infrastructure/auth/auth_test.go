package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signedToken(t *testing.T, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("unit-test-key"))
	require.NoError(t, err)
	return token
}

func TestIntrospect(t *testing.T) {
	expiry := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("decodes claims without verification", func(t *testing.T) {
		token := signedToken(t, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "user-1",
				ExpiresAt: jwt.NewNumericDate(expiry),
			},
			TenantID: "tenant-1",
			Email:    "admin@acme.example",
			Role:     "admin",
		})

		claims, err := Introspect(token)
		require.NoError(t, err)
		assert.Equal(t, "tenant-1", claims.TenantID)
		assert.Equal(t, "admin@acme.example", claims.Email)
		assert.Equal(t, "admin", claims.Role)
		assert.True(t, claims.ExpiresAt().Equal(expiry))
	})

	t.Run("garbage is rejected", func(t *testing.T) {
		_, err := Introspect("not.a.token")
		assert.ErrorIs(t, err, ErrMalformedToken)

		_, err = Introspect("")
		assert.ErrorIs(t, err, ErrMalformedToken)
	})

	t.Run("expiry checks", func(t *testing.T) {
		token := signedToken(t, Claims{
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expiry)},
		})
		claims, err := Introspect(token)
		require.NoError(t, err)

		assert.False(t, claims.Expired(expiry.Add(-time.Hour)))
		assert.True(t, claims.Expired(expiry.Add(time.Hour)))
	})

	t.Run("no expiry never expires", func(t *testing.T) {
		token := signedToken(t, Claims{TenantID: "tenant-1"})
		claims, err := Introspect(token)
		require.NoError(t, err)

		assert.True(t, claims.ExpiresAt().IsZero())
		assert.False(t, claims.Expired(time.Now().AddDate(100, 0, 0)))
	})
}

func TestStaticToken(t *testing.T) {
	token, err := StaticToken("abc").Token()
	require.NoError(t, err)
	assert.Equal(t, "abc", token)

	_, err = StaticToken("").Token()
	assert.ErrorIs(t, err, ErrNoToken)
}

func TestFileTokenStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	store := NewFileTokenStore(path)

	t.Run("missing file", func(t *testing.T) {
		_, err := store.Token()
		assert.Error(t, err)
	})

	t.Run("reads and caches", func(t *testing.T) {
		require.NoError(t, os.WriteFile(path, []byte("  tok-1\n"), 0o600))

		token, err := store.Token()
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token, "whitespace is trimmed")

		require.NoError(t, os.WriteFile(path, []byte("tok-2"), 0o600))
		token, err = store.Token()
		require.NoError(t, err)
		assert.Equal(t, "tok-1", token, "cached value wins until refresh")
	})

	t.Run("refresh picks up rotation", func(t *testing.T) {
		token, err := store.Refresh()
		require.NoError(t, err)
		assert.Equal(t, "tok-2", token)
	})
}

func TestBearer(t *testing.T) {
	assert.Equal(t, "abc", Bearer{Source: StaticToken("abc")}.Token())
	assert.Empty(t, Bearer{Source: StaticToken("")}.Token(), "errors degrade to no header")
}
