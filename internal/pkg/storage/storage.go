package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotFound    = errors.New("file not found")
)

// FileStorage persists report artifacts under relative keys.
type FileStorage interface {
	// Upload writes the whole reader to path and returns the stored key.
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// Delete is a no-op for a missing file.
	Delete(ctx context.Context, path string) error

	// GetURL returns the address a stored key is served from.
	GetURL(ctx context.Context, path string) (string, error)

	Exists(ctx context.Context, path string) (bool, error)
}
