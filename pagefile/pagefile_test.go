package pagefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tempFileName(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "data.page")
}

func TestCreateOpenClose(t *testing.T) {
	name := tempFileName(t)

	require.NoError(t, CreatePageFile(name))

	pf, err := OpenPageFile(name)
	require.NoError(t, err)
	assert.Equal(t, 1, pf.TotalNumPages())
	assert.Equal(t, name, pf.FileName())

	require.NoError(t, pf.Close())
}

func TestOpenMissingFile(t *testing.T) {
	_, err := OpenPageFile(filepath.Join(t.TempDir(), "nope.page"))
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestWriteReadRoundTrip(t *testing.T) {
	name := tempFileName(t)
	require.NoError(t, CreatePageFile(name))

	pf, err := OpenPageFile(name)
	require.NoError(t, err)
	defer pf.Close()

	out := make([]byte, PageSize)
	copy(out, "hello page zero")
	require.NoError(t, pf.WriteBlock(0, out))

	in := make([]byte, PageSize)
	require.NoError(t, pf.ReadBlock(0, in))
	assert.Equal(t, out, in)
}

func TestReadOutOfRange(t *testing.T) {
	name := tempFileName(t)
	require.NoError(t, CreatePageFile(name))

	pf, err := OpenPageFile(name)
	require.NoError(t, err)
	defer pf.Close()

	buf := make([]byte, PageSize)
	err = pf.ReadBlock(5, buf)
	assert.ErrorIs(t, err, ErrReadNonExisting)
}

func TestEnsureCapacityGrowsFile(t *testing.T) {
	name := tempFileName(t)
	require.NoError(t, CreatePageFile(name))

	pf, err := OpenPageFile(name)
	require.NoError(t, err)
	defer pf.Close()

	require.NoError(t, pf.EnsureCapacity(5))
	assert.Equal(t, 5, pf.TotalNumPages())

	stat, err := os.Stat(name)
	require.NoError(t, err)
	assert.Equal(t, int64(5*PageSize), stat.Size())

	// Calling again with a smaller target is a no-op.
	require.NoError(t, pf.EnsureCapacity(2))
	assert.Equal(t, 5, pf.TotalNumPages())
}

func TestAppendEmptyBlock(t *testing.T) {
	name := tempFileName(t)
	require.NoError(t, CreatePageFile(name))

	pf, err := OpenPageFile(name)
	require.NoError(t, err)
	defer pf.Close()

	require.NoError(t, pf.AppendEmptyBlock())
	assert.Equal(t, 2, pf.TotalNumPages())

	buf := make([]byte, PageSize)
	require.NoError(t, pf.ReadBlock(1, buf))
	assert.Equal(t, make([]byte, PageSize), buf)
}

func TestReadNavigationHelpers(t *testing.T) {
	name := tempFileName(t)
	require.NoError(t, CreatePageFile(name))

	pf, err := OpenPageFile(name)
	require.NoError(t, err)
	defer pf.Close()

	require.NoError(t, pf.EnsureCapacity(3))

	buf := make([]byte, PageSize)
	require.NoError(t, pf.ReadFirstBlock(buf))
	require.NoError(t, pf.ReadNextBlock(buf))
	require.NoError(t, pf.ReadPreviousBlock(buf))
	require.NoError(t, pf.ReadLastBlock(buf))
}

func TestDestroyPageFile(t *testing.T) {
	name := tempFileName(t)
	require.NoError(t, CreatePageFile(name))
	require.NoError(t, DestroyPageFile(name))

	_, err := os.Stat(name)
	assert.True(t, os.IsNotExist(err))
}
