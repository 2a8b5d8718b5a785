package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	exists, err := Exists(path)
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = Exists(filepath.Join(dir, "absent"))
	require.NoError(t, err)
	require.False(t, exists)
}

func TestIsDir(t *testing.T) {
	dir := t.TempDir()
	isDir, err := IsDir(dir)
	require.NoError(t, err)
	require.True(t, isDir)

	path := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	isDir, err = IsDir(path)
	require.NoError(t, err)
	require.False(t, isDir)
}

func TestIsExecutable(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "script")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	require.True(t, IsExecutable(path))

	plain := filepath.Join(dir, "plain")
	require.NoError(t, os.WriteFile(plain, []byte("x"), 0o644))
	require.False(t, IsExecutable(plain))
}
