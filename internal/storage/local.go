package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileStore persists raw attachment bytes under a ticket-scoped location.
type FileStore interface {
	Save(ticketID int64, originalName string, src io.Reader) (storedName, path string, err error)
}

// LocalFileStore writes attachments to the local filesystem.
type LocalFileStore struct {
	basePath string
}

// NewLocalFileStore creates the base directory when missing.
func NewLocalFileStore(basePath string) (*LocalFileStore, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}
	return &LocalFileStore{basePath: basePath}, nil
}

// Save writes the file under <base>/ticket-<id>/ with a collision-resistant
// name derived from a fresh UUID, never from user input alone.
func (s *LocalFileStore) Save(ticketID int64, originalName string, src io.Reader) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(originalName))
	storedName := fmt.Sprintf("attachment_%d_%s%s", ticketID, uuid.NewString(), ext)

	dir := filepath.Join(s.basePath, fmt.Sprintf("ticket-%d", ticketID))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	path := filepath.Join(dir, storedName)
	dst, err := os.Create(path)
	if err != nil {
		return "", "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", "", err
	}

	return storedName, path, nil
}
