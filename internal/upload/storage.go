package upload

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Storage persists uploaded file bytes under a generated name. Two drivers:
// local filesystem (default) and S3 for shared deployments.
type Storage interface {
	Save(ctx context.Context, name string, body io.Reader, size int64) error
}

// FSStorage writes files under a base directory.
type FSStorage struct {
	dir string
}

func NewFSStorage(dir string) (*FSStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FSStorage{dir: dir}, nil
}

func (s *FSStorage) Save(_ context.Context, name string, body io.Reader, _ int64) error {
	f, err := os.Create(filepath.Join(s.dir, filepath.Base(name)))
	if err != nil {
		return fmt.Errorf("create upload file: %w", err)
	}

	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return fmt.Errorf("write upload file: %w", err)
	}
	return f.Close()
}
