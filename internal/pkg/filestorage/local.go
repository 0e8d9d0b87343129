package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/emirhan/staffgrade/internal/pkg/logger"
)

// LocalStorage handles saving files to the local filesystem.
type LocalStorage struct {
	basePath string // The root directory where files will be stored
	baseURL  string // The base URL to access the stored files (optional)
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned file paths.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// SaveFile saves a file under a uuid-based name at the storage root.
func (ls *LocalStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	if fileHeader == nil {
		return "", nil // No file uploaded
	}

	ext := filepath.Ext(fileHeader.Filename)
	return ls.SaveFileAt(fileHeader, uuid.New().String()+ext)
}

// SaveFileAt saves a file at the exact relative path, replacing any previous
// content at that path. Submission documents use deterministic paths so a
// re-submission overwrites the earlier upload.
func (ls *LocalStorage) SaveFileAt(fileHeader *multipart.FileHeader, relPath string) (string, error) {
	if fileHeader == nil {
		return "", nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	dstPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))
	if err := os.MkdirAll(filepath.Dir(dstPath), os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create upload subdirectory")
		return "", fmt.Errorf("failed to create upload subdirectory: %w", err)
	}

	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return "", fmt.Errorf("failed to save file content: %w", err)
	}

	return relPath, nil
}

// Open opens a stored file for reading.
func (ls *LocalStorage) Open(relPath string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(ls.basePath, filepath.FromSlash(relPath)))
	if err != nil {
		return nil, fmt.Errorf("failed to open stored file %s: %w", relPath, err)
	}
	return f, nil
}

// DeleteFile removes a file from storage.
func (ls *LocalStorage) DeleteFile(relPath string) error {
	fullPath := filepath.Join(ls.basePath, filepath.FromSlash(relPath))
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		logger.Error().Err(err).Str("path", fullPath).Msg("Failed to delete stored file")
		return fmt.Errorf("failed to delete stored file: %w", err)
	}
	return nil
}

// GetFullPath returns the full filesystem path for a stored file.
func (ls *LocalStorage) GetFullPath(relPath string) string {
	return filepath.Join(ls.basePath, filepath.FromSlash(relPath))
}

// FileURL returns the public URL for a stored file when a base URL is configured.
func (ls *LocalStorage) FileURL(relPath string) string {
	if ls.baseURL == "" {
		return relPath
	}
	return ls.baseURL + "/" + relPath
}
