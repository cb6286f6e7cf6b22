package util

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirAndFileExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "ontology.db")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o644))

	assert.True(t, DirExists(dir))
	assert.False(t, DirExists(file))
	assert.False(t, DirExists(filepath.Join(dir, "missing")))

	assert.True(t, FileExists(file))
	assert.False(t, FileExists(dir))
	assert.False(t, FileExists(filepath.Join(dir, "missing.db")))
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data", "db")
	require.NoError(t, EnsureDir(dir))
	assert.True(t, DirExists(dir))
	require.NoError(t, EnsureDir(dir))
}
