package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oldbaker/go-storefront/storage"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile", "storefront.json")

	fs, err := storage.NewFileStore(path)
	require.NoError(t, err)

	_, ok := fs.Get(storage.AuthTokenKey)
	require.False(t, ok)

	require.NoError(t, fs.Set(storage.AuthTokenKey, "Bearer abc"))
	require.NoError(t, fs.Set(storage.AuthUserKey, `{"id":1}`))

	// A fresh store against the same file sees the persisted values.
	reopened, err := storage.NewFileStore(path)
	require.NoError(t, err)
	value, ok := reopened.Get(storage.AuthTokenKey)
	require.True(t, ok)
	require.Equal(t, "Bearer abc", value)

	require.NoError(t, reopened.Delete(storage.AuthTokenKey))
	_, ok = reopened.Get(storage.AuthTokenKey)
	require.False(t, ok)

	// Deleting a missing key is a no-op.
	require.NoError(t, reopened.Delete(storage.AuthTokenKey))
}

func TestFileStoreToleratesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "storefront.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	fs, err := storage.NewFileStore(path)
	require.NoError(t, err)

	_, ok := fs.Get(storage.AuthUserKey)
	require.False(t, ok)

	require.NoError(t, fs.Set(storage.AuthUserKey, `{"id":2}`))
	value, ok := fs.Get(storage.AuthUserKey)
	require.True(t, ok)
	require.Equal(t, `{"id":2}`, value)
}
