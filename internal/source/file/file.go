// Package file implements a source.Source over a local directory tree.
package file

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/quarrydata/tributary/internal/source"
)

func init() {
	source.Register("file", New)
}

// Source reads dataset files from a local directory. Used for development
// runs and tests against sample data.
type Source struct {
	root string
}

// New creates a file source rooted at cfg.Root.
func New(cfg source.Config) (source.Source, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("file source: root directory is required")
	}
	info, err := os.Stat(cfg.Root)
	if err != nil {
		return nil, fmt.Errorf("file source: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("file source: %s is not a directory", cfg.Root)
	}
	return &Source{root: cfg.Root}, nil
}

// List walks root/prefix recursively and returns all .json paths relative
// to root, using forward slashes regardless of platform.
func (s *Source) List(_ context.Context, prefix string) ([]string, error) {
	base := filepath.Join(s.root, filepath.FromSlash(prefix))
	if _, err := os.Stat(base); os.IsNotExist(err) {
		return nil, nil
	}

	var keys []string
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return err
		}
		keys = append(keys, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("file source: list %s: %w", prefix, err)
	}
	sort.Strings(keys)
	return keys, nil
}

// Open returns a reader for the file at key.
func (s *Source) Open(_ context.Context, key string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(s.root, filepath.FromSlash(key)))
	if err != nil {
		return nil, fmt.Errorf("file source: open %s: %w", key, err)
	}
	return f, nil
}
