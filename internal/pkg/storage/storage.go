package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath  = errors.New("invalid file path")
	ErrFileNotFound = errors.New("file not found")
)

// FileStorage stores generated artefacts under slash-separated keys.
type FileStorage interface {
	// Upload writes the content under key and returns the normalised key
	Upload(ctx context.Context, content io.Reader, key string, contentType string) (string, error)

	// Download opens a stored file
	Download(ctx context.Context, key string) (io.ReadCloser, error)

	// URL returns the public URL of a stored file
	URL(key string) string
}
