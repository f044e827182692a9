package secrets

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// cheap scrypt parameters keep the tests fast
func openFast(t *testing.T, path, pass string) *Keystore {
	t.Helper()
	ks, err := Open(path, pass)
	require.NoError(t, err)
	ks.kdf = kdfParams{N: 1 << 4, R: 8, P: 1}
	return ks
}

func TestKeystore_SetGetKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.enc")
	ks := openFast(t, path, "pass")

	_, ok, err := ks.Get("twilio.auth_token")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, Exists(path))

	require.NoError(t, ks.Set("twilio.auth_token", "tok"))
	require.NoError(t, ks.Set("smtp.password", "pw"))
	assert.True(t, Exists(path))

	reopened := openFast(t, path, "pass")
	v, ok, err := reopened.Get("twilio.auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "tok", v)

	keys, err := reopened.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"smtp.password", "twilio.auth_token"}, keys)

	require.NoError(t, reopened.Delete("smtp.password"))
	keys, err = reopened.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"twilio.auth_token"}, keys)
}

func TestKeystore_WrongPassphrase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "secrets.enc")
	require.NoError(t, openFast(t, path, "correct").Set("k", "v"))

	_, _, err := openFast(t, path, "wrong").Get("k")
	assert.ErrorIs(t, err, ErrWrongPassphrase)
}

func TestOpen_RequiresPassphrase(t *testing.T) {
	_, err := Open("x", "")
	assert.Error(t, err)
}
