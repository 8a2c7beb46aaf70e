// internal/storage/storage_test.go
package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("token", "abc123"))
	require.NoError(t, s.Set("session", `{"account":"admin"}`))

	// Reopen and expect both keys back.
	s2, err := OpenFileStore(path)
	require.NoError(t, err)

	v, ok := s2.Get("token")
	assert.True(t, ok)
	assert.Equal(t, "abc123", v)

	v, ok = s2.Get("session")
	assert.True(t, ok)
	assert.Equal(t, `{"account":"admin"}`, v)
}

func TestFileStoreRemove(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Set("token", "abc123"))
	require.NoError(t, s.Remove("token"))

	s2, err := OpenFileStore(path)
	require.NoError(t, err)
	_, ok := s2.Get("token")
	assert.False(t, ok)
}

func TestFileStoreCorruptFileIsCleared(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := OpenFileStore(path)
	require.NoError(t, err)
	_, ok := s.Get("token")
	assert.False(t, ok)

	// The corrupt file is gone.
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()
	require.NoError(t, s.Set("k", "v"))

	v, ok := s.Get("k")
	assert.True(t, ok)
	assert.Equal(t, "v", v)

	require.NoError(t, s.Remove("k"))
	_, ok = s.Get("k")
	assert.False(t, ok)
}
