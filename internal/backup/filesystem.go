package backup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FilesystemStore keeps backup objects in a local directory.
type FilesystemStore struct {
	dir string
}

func NewFilesystemStore(dir string) *FilesystemStore {
	return &FilesystemStore{dir: dir}
}

func (s *FilesystemStore) Put(_ context.Context, name string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create backup dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return fmt.Errorf("write backup object: %w", err)
	}
	return nil
}
