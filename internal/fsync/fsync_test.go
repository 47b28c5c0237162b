package fsync

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "partitions.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	_, err = f.WriteString("nvs, data, nvs, 0x9000, 24K,\n")
	require.NoError(t, err)

	require.NoError(t, File(f, Data))
	require.NoError(t, File(f, Full))
}

func TestFile_Closed(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "x"))
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Error(t, File(f, Data))
}

func TestDir(t *testing.T) {
	require.NoError(t, Dir(t.TempDir()))
}
