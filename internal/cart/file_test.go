package cart

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/Goga-Rid/pitza/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFileStorage(t *testing.T) *FileStorage {
	t.Helper()
	return NewFileStorage(storage.NewFile(filepath.Join(t.TempDir(), "cart.json")))
}

func TestFileStorage_LoadMissing(t *testing.T) {
	fs := newFileStorage(t)

	_, err := fs.Load(context.Background())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorage_SaveLoad(t *testing.T) {
	fs := newFileStorage(t)
	ctx := context.Background()

	lines := []Line{
		{Product: productA, Quantity: 2, AddedAt: time.Now().UTC()},
		{Product: productB, Quantity: 1, AddedAt: time.Now().UTC()},
	}
	require.NoError(t, fs.Save(ctx, lines))

	got, err := fs.Load(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, productA.ID, got[0].Product.ID)
	assert.Equal(t, 2, got[0].Quantity)
	assert.Equal(t, productA.Name, got[0].Product.Name)
}

func TestFileStorage_Clear(t *testing.T) {
	fs := newFileStorage(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, []Line{{Product: productA, Quantity: 1}}))
	require.NoError(t, fs.Clear(ctx))

	_, err := fs.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}
