package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFile_ReadMissing(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "token"))

	_, err := f.Read()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFile_WriteReadRoundTrip(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "token"))

	require.NoError(t, f.Write([]byte("tok-abc")))

	data, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", string(data))
}

func TestFile_WriteReplaces(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "token"))

	require.NoError(t, f.Write([]byte("first")))
	require.NoError(t, f.Write([]byte("second")))

	data, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))
}

func TestFile_RemoveThenRead(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "cart"))

	require.NoError(t, f.Write([]byte("{}")))
	require.NoError(t, f.Remove())

	_, err := f.Read()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFile_RemoveMissingIsNoop(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "cart"))
	assert.NoError(t, f.Remove())
}

func TestFile_CreatesStateDir(t *testing.T) {
	f := NewFile(filepath.Join(t.TempDir(), "nested", "state", "token"))

	require.NoError(t, f.Write([]byte("x")))

	data, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}
