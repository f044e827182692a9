package atomicfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"edufair/internal/util/atomicfile"
)

func TestJSON_RoundTripAndMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	out := map[string]int{"keep": 1}
	require.NoError(t, atomicfile.ReadJSON(path, &out))
	assert.Equal(t, map[string]int{"keep": 1}, out)

	require.NoError(t, atomicfile.WriteJSON(path, map[string]int{"a": 2}, 0o600))
	var got map[string]int
	require.NoError(t, atomicfile.ReadJSON(path, &got))
	assert.Equal(t, map[string]int{"a": 2}, got)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestWrite_CreatesParentAndReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "secrets.sealed")

	require.NoError(t, atomicfile.Write(path, []byte("one"), 0o600))
	require.NoError(t, atomicfile.Write(path, []byte("two"), 0o600))

	b, err := atomicfile.Read(path)
	require.NoError(t, err)
	assert.Equal(t, "two", string(b))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file left behind")
}

func TestReadJSON_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	var out map[string]int
	assert.ErrorContains(t, atomicfile.ReadJSON(path, &out), "decode state.json")
}

func TestRead_Missing(t *testing.T) {
	b, err := atomicfile.Read(filepath.Join(t.TempDir(), "nope"))
	require.NoError(t, err)
	assert.Nil(t, b)
}
