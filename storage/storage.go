package storage

import (
	"context"
	"io"
)

// Storage is the artifact store used by the report exporter. Paths are
// relative to the backend's root.
type Storage interface {
	// Upload writes the reader's contents to path, creating parent
	// directories as needed.
	Upload(ctx context.Context, path string, reader io.Reader) error
	// Download returns a reader for the file at path.
	Download(ctx context.Context, path string) (io.ReadCloser, error)
	// Delete removes the file at path. Missing files are not an error.
	Delete(ctx context.Context, path string) error
	// Exists reports whether a file exists at path.
	Exists(ctx context.Context, path string) (bool, error)
	// URL returns an addressable location for the file at path.
	URL(ctx context.Context, path string) (string, error)
}
