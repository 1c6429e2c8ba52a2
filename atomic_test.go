package wiki40b_bpe

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicFileCommit(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "nested", "out.json")
	out, err := createAtomic(dest)
	require.NoError(t, err)
	_, err = out.WriteString("[]")
	require.NoError(t, err)
	require.NoError(t, out.Commit())
	// Abort after a commit leaves the file alone.
	out.Abort()

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
	stat, err := os.Stat(dest)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(filePerm), stat.Mode().Perm())
}

func TestAtomicFileAbort(t *testing.T) {
	dir := t.TempDir()
	dest := filepath.Join(dir, "out.json")
	writeFile(t, dest, "old")
	out, err := createAtomic(dest)
	require.NoError(t, err)
	_, err = out.WriteString("new")
	require.NoError(t, err)
	out.Abort()
	out.Abort()

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
