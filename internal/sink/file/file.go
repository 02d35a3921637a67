// Package file implements a sink.ObjectStore over a local directory tree.
package file

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quarrydata/tributary/internal/sink"
)

func init() {
	sink.Register("file", New)
}

// Store writes table objects under a local root directory. Used for
// development runs and tests.
type Store struct {
	root string
}

// New creates a file store rooted at cfg.Root, creating it if needed.
func New(cfg sink.Config) (sink.ObjectStore, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("file sink: root directory is required")
	}
	if err := os.MkdirAll(cfg.Root, 0755); err != nil {
		return nil, fmt.Errorf("file sink: %w", err)
	}
	return &Store{root: cfg.Root}, nil
}

// Put writes data to root/key, creating parent directories.
func (s *Store) Put(_ context.Context, key string, data []byte) error {
	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("file sink: mkdir for %s: %w", key, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("file sink: write %s: %w", key, err)
	}
	return nil
}

// RemovePrefix deletes the directory tree at root/prefix.
func (s *Store) RemovePrefix(_ context.Context, prefix string) error {
	path := filepath.Join(s.root, filepath.FromSlash(prefix))
	if err := os.RemoveAll(path); err != nil {
		return fmt.Errorf("file sink: remove %s: %w", prefix, err)
	}
	return nil
}
