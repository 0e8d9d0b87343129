package filestorage

import (
	"io"
	"mime/multipart"
)

// FileStorage defines the interface for file storage operations
type FileStorage interface {
	// SaveFile saves a file under a collision-free generated name and
	// returns the stored path.
	SaveFile(fileHeader *multipart.FileHeader) (string, error)

	// SaveFileAt saves a file at the exact relative path, replacing any
	// previous content at that path.
	SaveFileAt(fileHeader *multipart.FileHeader, relPath string) (string, error)

	// Open opens a stored file for reading.
	Open(relPath string) (io.ReadCloser, error)

	// DeleteFile removes a file from storage
	DeleteFile(relPath string) error

	// GetFullPath returns the full filesystem path for a stored file
	GetFullPath(relPath string) string
}
