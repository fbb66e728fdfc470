// Package catalogfile serves the catalog from a YAML/JSON document: the
// sample embedded in the binary or a file on disk that can be watched for
// changes.
package catalogfile

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"fan_showcase/internal/domain/models"
	"fan_showcase/internal/metrics"
	"fan_showcase/internal/storage"

	"gopkg.in/yaml.v3"
)

//go:embed sample.yaml
var sampleCatalog []byte

// Sample returns the catalog embedded in the binary.
func Sample() (models.Catalog, error) {
	return Parse(sampleCatalog, ".yaml")
}

// Parse decodes a catalog document. ext selects the format: ".json" or
// YAML for anything else.
func Parse(data []byte, ext string) (models.Catalog, error) {
	const op = "storage.catalogfile.Parse"

	var catalog models.Catalog

	switch strings.ToLower(ext) {
	case ".json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&catalog); err != nil {
			return models.Catalog{}, fmt.Errorf("%s: %w: %v", op, storage.ErrCatalogInvalid, err)
		}
	default:
		if err := yaml.Unmarshal(data, &catalog); err != nil {
			return models.Catalog{}, fmt.Errorf("%s: %w: %v", op, storage.ErrCatalogInvalid, err)
		}
	}

	return catalog, nil
}

// Load reads and decodes the catalog document at path.
func Load(path string) (models.Catalog, error) {
	const op = "storage.catalogfile.Load"

	data, err := os.ReadFile(path)
	if err != nil {
		return models.Catalog{}, fmt.Errorf("%s: %w", op, err)
	}

	return Parse(data, filepath.Ext(path))
}

// Store holds the current catalog snapshot.
type Store struct {
	log  *slog.Logger
	path string

	mu      sync.RWMutex
	catalog models.Catalog
}

// NewEmbedded serves the sample catalog.
func NewEmbedded(log *slog.Logger) (*Store, error) {
	catalog, err := Sample()
	if err != nil {
		return nil, err
	}

	log.Info("catalog loaded", slog.String("source", "embedded"), slog.Int("records", catalog.Size()))

	return &Store{log: log, catalog: catalog}, nil
}

// NewFile serves the catalog document at path.
func NewFile(log *slog.Logger, path string) (*Store, error) {
	s := &Store{log: log, path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) Catalog(ctx context.Context) (models.Catalog, error) {
	if err := ctx.Err(); err != nil {
		return models.Catalog{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.catalog, nil
}

// Reload re-reads the document. On failure the previous snapshot stays.
func (s *Store) Reload() error {
	const op = "storage.catalogfile.Store.Reload"

	if s.path == "" {
		return nil
	}

	catalog, err := Load(s.path)
	if err != nil {
		metrics.CatalogReloads.WithLabelValues("error").Inc()
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.catalog = catalog
	s.mu.Unlock()

	metrics.CatalogReloads.WithLabelValues("ok").Inc()
	s.log.Info("catalog loaded",
		slog.String("source", s.path),
		slog.Int("records", catalog.Size()),
	)

	return nil
}
