package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

const (
	keySeparator = ":"
	tempDirName  = ".tmp"
)

// DiskvKV stores each key as a file below a base directory. A key "a:b"
// lives at <base>/a/b.
type DiskvKV struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskvKV opens (creating if needed) a diskv store rooted at basePath.
func NewDiskvKV(basePath string) (*DiskvKV, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, errors.New("store: diskv base path required")
	}
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}
	return &DiskvKV{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			TempDir:           filepath.Join(basePath, tempDirName),
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			// No read cache: other processes write the same files.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
	}, nil
}

// BasePath is the directory the store writes below.
func (s *DiskvKV) BasePath() string {
	return s.basePath
}

func (s *DiskvKV) Get(_ context.Context, key string) ([]byte, error) {
	val, err := s.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: read %s: %w", key, err)
	}
	return val, nil
}

func (s *DiskvKV) Set(_ context.Context, key string, value []byte) error {
	if err := s.d.Write(key, value); err != nil {
		return fmt.Errorf("store: write %s: %w", key, err)
	}
	return nil
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, keySeparator)
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	if len(pathKey.Path) == 0 {
		return pathKey.FileName
	}
	return strings.Join(pathKey.Path, keySeparator) + keySeparator + pathKey.FileName
}
