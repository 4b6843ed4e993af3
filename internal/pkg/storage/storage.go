package storage

import (
	"context"
	"errors"
	"io"
	"time"
)

// ErrNotFound is returned when no object is stored under a path.
var ErrNotFound = errors.New("file not found")

// FileStorage stores generated export documents.
type FileStorage interface {
	// Upload stores file under path and returns the stored key
	Upload(ctx context.Context, file io.Reader, path string, contentType string) (string, error)

	// Download retrieves a file
	Download(ctx context.Context, path string) (io.ReadCloser, error)

	// GetURL returns the public download URL of a stored key
	GetURL(ctx context.Context, path string, expiry time.Duration) (string, error)
}
