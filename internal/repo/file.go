package repo

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/pkordes/travel-calendar/internal/domain"
)

// validKey restricts keys to names that are safe as a single file name.
var validKey = regexp.MustCompile(`^[A-Za-z0-9._-]+$`)

// fileKV stores each key as <dir>/<key>.json.
type fileKV struct {
	dir string
}

// NewFileKV returns a KV rooted at dir. The directory is created on first Put.
func NewFileKV(dir string) KV {
	return &fileKV{dir: dir}
}

func (f *fileKV) path(key string) (string, error) {
	if !validKey.MatchString(key) || key == "." || key == ".." {
		return "", fmt.Errorf("%w: invalid storage key %q", domain.ErrValidation, key)
	}
	return filepath.Join(f.dir, key+".json"), nil
}

// Get reads the file for key.
func (f *fileKV) Get(ctx context.Context, key string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	p, err := f.path(key)
	if err != nil {
		return "", fmt.Errorf("repo.fileKV.Get: %w", err)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("repo.fileKV.Get: %w", domain.ErrNotFound)
		}
		return "", fmt.Errorf("repo.fileKV.Get: %w", err)
	}
	return string(data), nil
}

// Put writes value atomically: temp file in the same directory, fsync, rename.
// A crash mid-write leaves the previous value intact.
func (f *fileKV) Put(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p, err := f.path(key)
	if err != nil {
		return fmt.Errorf("repo.fileKV.Put: %w", err)
	}
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("repo.fileKV.Put: mkdir: %w", err)
	}

	tmp, err := os.CreateTemp(f.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("repo.fileKV.Put: create temp: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.WriteString(value); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.fileKV.Put: write: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("repo.fileKV.Put: sync: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("repo.fileKV.Put: close: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("repo.fileKV.Put: chmod: %w", err)
	}
	if err := os.Rename(tmpName, p); err != nil {
		return fmt.Errorf("repo.fileKV.Put: rename: %w", err)
	}
	return nil
}
