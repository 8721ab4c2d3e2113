package file

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/storefront/internal/storage"
)

func TestStore_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")

	first, err := NewStore(path)
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, "token", "jwt-value"))
	require.NoError(t, first.Set(ctx, "usuario", `{"id":7}`))

	second, err := NewStore(path)
	require.NoError(t, err)
	got, err := second.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "jwt-value", got)

	require.NoError(t, second.Delete(ctx, "token"))
	_, err = first.Get(ctx, "token")
	assert.ErrorIs(t, err, storage.ErrNotFound)

	user, err := first.Get(ctx, "usuario")
	require.NoError(t, err)
	assert.Equal(t, `{"id":7}`, user)
}

func TestStore_MissingFileIsEmpty(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "usuario")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.NoError(t, s.Delete(context.Background(), "usuario"))
}

func TestStore_CorruptFileIsReplacedOnWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s, err := NewStore(path)
	require.NoError(t, err)

	_, err = s.Get(ctx, "token")
	require.Error(t, err)
	assert.NotErrorIs(t, err, storage.ErrNotFound)

	require.NoError(t, s.Set(ctx, "token", "fresh"))
	got, err := s.Get(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "fresh", got)
}
