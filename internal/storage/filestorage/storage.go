package storage

import (
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// AssetStorage интерфейс для работы с каталогом изображений
type AssetStorage interface {
	Resolve(ref string) (url string, ok bool)
	GetFullPath(relativePath string) string
	BaseURL() string
	GetBaseDir() string
}

// LocalAssetStorage реализация для локальной файловой системы
type LocalAssetStorage struct {
	baseDir string // Базовый каталог с изображениями (например: "./assets")
	baseURL string // Базовый URL для доступа к файлам (например: "/assets")
}

func NewLocalAssetStorage(baseDir, baseURL string) (*LocalAssetStorage, error) {
	// Создаем директорию, если она не существует
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, err
	}

	return &LocalAssetStorage{
		baseDir: baseDir,
		baseURL: strings.TrimRight(baseURL, "/"),
	}, nil
}

// Resolve возвращает URL изображения и признак его наличия.
// Внешние ссылки (http, https, data) считаются доступными.
func (s *LocalAssetStorage) Resolve(ref string) (string, bool) {
	if ref == "" {
		return "", false
	}

	if isRemote(ref) {
		return ref, true
	}

	rel := cleanRelative(ref)
	if rel == "" {
		return "", false
	}

	info, err := os.Stat(s.GetFullPath(rel))
	if err != nil || info.IsDir() {
		return "", false
	}

	return s.baseURL + "/" + filepath.ToSlash(rel), true
}

func (s *LocalAssetStorage) GetFullPath(relativePath string) string {
	return filepath.Join(s.baseDir, filepath.FromSlash(cleanRelative(relativePath)))
}

func (s *LocalAssetStorage) BaseURL() string {
	return s.baseURL
}

func (s *LocalAssetStorage) GetBaseDir() string {
	return s.baseDir
}

func isRemote(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil {
		return false
	}
	switch u.Scheme {
	case "http", "https", "data":
		return true
	default:
		return false
	}
}

// cleanRelative не позволяет выйти за пределы baseDir
func cleanRelative(ref string) string {
	cleaned := path.Clean("/" + filepath.ToSlash(ref))
	return strings.TrimPrefix(cleaned, "/")
}
