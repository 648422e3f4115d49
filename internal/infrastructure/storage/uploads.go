// Package storage receives uploaded roster files onto local disk. The saved
// file is temporary: the import pipeline removes it after processing.
package storage

import (
	"crypto/rand"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
)

// UploadStore writes incoming multipart files under a base directory.
type UploadStore struct {
	baseDir string
}

// NewUploadStore creates the base directory if needed.
func NewUploadStore(baseDir string) (*UploadStore, error) {
	if baseDir == "" {
		baseDir = os.TempDir()
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &UploadStore{baseDir: baseDir}, nil
}

// Save copies one uploaded file to local storage under a random name,
// preserving the original extension, and returns its path.
func (s *UploadStore) Save(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	var suffix [8]byte
	if _, err := rand.Read(suffix[:]); err != nil {
		return "", fmt.Errorf("generate upload name: %w", err)
	}
	name := fmt.Sprintf("roster-%x%s", suffix, filepath.Ext(fh.Filename))
	path := filepath.Join(s.baseDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		_ = os.Remove(path)
		return "", fmt.Errorf("write upload file: %w", err)
	}
	if err := dst.Close(); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("close upload file: %w", err)
	}

	return path, nil
}
