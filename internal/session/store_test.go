package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "token"))
}

func signedToken(t *testing.T, sub string, authorities []string) string {
	t.Helper()

	claims := jwt.MapClaims{
		"sub":         sub,
		"authorities": authorities,
		"iat":         time.Now().Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return tok
}

func TestStore_SetGetClear(t *testing.T) {
	s := newTestStore(t)

	_, ok := s.Token()
	assert.False(t, ok)

	require.NoError(t, s.SetToken("abc"))
	tok, ok := s.Token()
	assert.True(t, ok)
	assert.Equal(t, "abc", tok)

	require.NoError(t, s.Clear())
	_, ok = s.Token()
	assert.False(t, ok)

	//二重Clearはエラーにしない
	require.NoError(t, s.Clear())
}

func TestStore_ClaimsFromValidToken(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetToken(signedToken(t, "buyer@example.com", []string{"ROLE_BUYER"})))

	//署名は検証しない。ペイロードが読めればよい。
	assert.Equal(t, "buyer@example.com", s.Subject())
	assert.Equal(t, "ROLE_BUYER", s.Role())
}

func TestStore_MalformedToken(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetToken("not-a-jwt"))

	assert.Equal(t, "", s.Subject())
	assert.Equal(t, "", s.Role())
}

func TestStore_AbsentToken(t *testing.T) {
	s := newTestStore(t)

	assert.Equal(t, "", s.Subject())
	assert.Equal(t, "", s.Role())
}

func TestStore_EmptyAuthorities(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.SetToken(signedToken(t, "x@example.com", []string{})))

	assert.Equal(t, "x@example.com", s.Subject())
	assert.Equal(t, "", s.Role())
}
