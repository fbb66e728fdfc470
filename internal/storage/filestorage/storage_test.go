package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	storage "fan_showcase/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAssetStorage(t *testing.T) (*storage.LocalAssetStorage, string) {
	t.Helper()

	tempDir := t.TempDir()

	fs, err := storage.NewLocalAssetStorage(tempDir, "/assets/")
	require.NoError(t, err)

	return fs, tempDir
}

func createTestFile(t *testing.T, dir, filename string) {
	t.Helper()

	filePath := filepath.Join(dir, filename)
	require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0755))
	require.NoError(t, os.WriteFile(filePath, []byte("image"), 0644))
}

func TestNewLocalAssetStorage_CreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "assets")

	fs, err := storage.NewLocalAssetStorage(dir, "/assets")
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, dir, fs.GetBaseDir())
	assert.Equal(t, "/assets", fs.BaseURL())
}

func TestLocalAssetStorage_Resolve(t *testing.T) {
	fs, dir := setupAssetStorage(t)
	createTestFile(t, dir, "bkm.jpg")
	createTestFile(t, dir, "comics/1/p1.png")

	tests := []struct {
		name     string
		ref      string
		expected string
		ok       bool
	}{
		{name: "existing file", ref: "bkm.jpg", expected: "/assets/bkm.jpg", ok: true},
		{name: "nested file", ref: "comics/1/p1.png", expected: "/assets/comics/1/p1.png", ok: true},
		{name: "missing file", ref: "hh.jpg", ok: false},
		{name: "directory", ref: "comics", ok: false},
		{name: "empty", ref: "", ok: false},
		{name: "remote", ref: "https://via.placeholder.com/400x300", expected: "https://via.placeholder.com/400x300", ok: true},
		{name: "traversal stays inside", ref: "../../bkm.jpg", expected: "/assets/bkm.jpg", ok: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			url, ok := fs.Resolve(tt.ref)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, url)
			}
		})
	}
}

func TestLocalAssetStorage_GetFullPath(t *testing.T) {
	fs, dir := setupAssetStorage(t)

	assert.Equal(t, filepath.Join(dir, "a", "b.png"), fs.GetFullPath("a/b.png"))
	assert.Equal(t, filepath.Join(dir, "etc", "passwd"), fs.GetFullPath("../../etc/passwd"))
}
