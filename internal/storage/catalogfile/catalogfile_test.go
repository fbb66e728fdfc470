package catalogfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"fan_showcase/internal/lib/logger/handlers/slogdiscard"
	"fan_showcase/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSample(t *testing.T) {
	catalog, err := Sample()
	require.NoError(t, err)

	assert.Len(t, catalog.Gallery, 8)
	assert.Len(t, catalog.Games, 7)
	assert.Len(t, catalog.Events, 5)
	assert.Len(t, catalog.Characters, 3)
	assert.Len(t, catalog.Comics, 3)

	assert.Equal(t, []string{"互动解谜"}, []string(catalog.Games[5].Type))
	assert.True(t, catalog.Games[6].Image.IsZero())
	assert.Equal(t, "已结束", catalog.Events[0].Status)
	assert.Equal(t, "年龄", catalog.Characters[0].Details[0].Label)
	assert.Equal(t, "性格", catalog.Characters[0].Details[3].Label)
	assert.Len(t, catalog.Comics[2].Pages, 4)
}

func TestParse_JSON(t *testing.T) {
	doc := `{
		"games": [{"id": 1, "title": "g", "type": "视觉小说", "updated": "2023-11-05", "image": {"main": "a.png", "hover": "b.png"}}],
		"characters": [{"id": 1, "name": "绒绒", "details": {"年龄": "18", "性别": "女"}}]
	}`

	catalog, err := Parse([]byte(doc), ".json")
	require.NoError(t, err)

	require.Len(t, catalog.Games, 1)
	assert.Equal(t, "b.png", catalog.Games[0].Image.Hover)
	assert.Equal(t, "性别", catalog.Characters[0].Details[1].Label)
}

func TestParse_EventStatusUnderUpdated(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ext  string
	}{
		{
			name: "json",
			doc:  `{"events": [{"id": 1, "title": "镜花水月1.0", "type": "同好聚会", "updated": "已结束", "image": "DSC_0879.JPG"}]}`,
			ext:  ".json",
		},
		{
			name: "yaml",
			doc:  "events:\n  - { id: 1, title: 镜花水月1.0, type: 同好聚会, updated: 已结束, image: DSC_0879.JPG }\n",
			ext:  ".yaml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			catalog, err := Parse([]byte(tt.doc), tt.ext)
			require.NoError(t, err)

			require.Len(t, catalog.Events, 1)
			assert.Equal(t, "已结束", catalog.Events[0].Status)
			assert.Equal(t, []string{"同好聚会"}, []string(catalog.Events[0].Type))
			assert.Equal(t, "DSC_0879.JPG", catalog.Events[0].Image)
		})
	}
}

func TestParse_EventStatusWins(t *testing.T) {
	catalog, err := Parse([]byte(`{"events": [{"id": 1, "status": "预热中", "updated": "已结束"}]}`), ".json")
	require.NoError(t, err)
	assert.Equal(t, "预热中", catalog.Events[0].Status)

	_, err = Parse([]byte(`{"events": [{"id": 1, "when": "已结束"}]}`), ".json")
	assert.ErrorIs(t, err, storage.ErrCatalogInvalid, "unknown event fields are still rejected")
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte(`{"games": [{"type": 5}]}`), ".json")
	assert.ErrorIs(t, err, storage.ErrCatalogInvalid)

	_, err = Parse([]byte("games: [\n"), ".yaml")
	assert.ErrorIs(t, err, storage.ErrCatalogInvalid)
}

func writeCatalog(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestStore_FileReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, "gallery:\n  - { id: 1, title: a }\n")

	s, err := NewFile(slogdiscard.NewDiscardLogger(), path)
	require.NoError(t, err)

	catalog, err := s.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog.Gallery, 1)

	writeCatalog(t, path, "gallery: [\n")
	assert.Error(t, s.Reload())

	catalog, err = s.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog.Gallery, 1, "previous snapshot kept")

	writeCatalog(t, path, "gallery:\n  - { id: 1, title: a }\n  - { id: 2, title: b }\n")
	require.NoError(t, s.Reload())

	catalog, err = s.Catalog(context.Background())
	require.NoError(t, err)
	assert.Len(t, catalog.Gallery, 2)
}

func TestStore_Watch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	writeCatalog(t, path, "comics:\n  - { id: 1, title: a, pages: [p1] }\n")

	s, err := NewFile(slogdiscard.NewDiscardLogger(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, s.Watch(ctx, 10*time.Millisecond))

	writeCatalog(t, path, "comics:\n  - { id: 1, title: a, pages: [p1] }\n  - { id: 2, title: b, pages: [p1, p2] }\n")

	assert.Eventually(t, func() bool {
		catalog, err := s.Catalog(context.Background())
		return err == nil && len(catalog.Comics) == 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestStore_EmbeddedCannotWatch(t *testing.T) {
	s, err := NewEmbedded(slogdiscard.NewDiscardLogger())
	require.NoError(t, err)

	assert.Error(t, s.Watch(context.Background(), 0))
	assert.NoError(t, s.Reload())
}
