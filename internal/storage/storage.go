package storage

import "errors"

var (
	ErrorNoSuchKey = errors.New("no such key")
	ErrNotFound    = errors.New("not found")
)

var (
	ErrInvalidTheme   = errors.New("invalid theme")
	ErrCatalogInvalid = errors.New("invalid catalog document")
)
