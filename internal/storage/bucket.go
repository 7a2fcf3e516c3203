package storage

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var ErrInvalidKey = errors.New("invalid object key")

// LocalBucket stores public objects on disk and serves them under PublicURL.
type LocalBucket struct {
	Dir       string
	PublicURL string
}

func NewLocalBucket(dir, publicURL string) (*LocalBucket, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &LocalBucket{
		Dir:       dir,
		PublicURL: strings.TrimRight(publicURL, "/"),
	}, nil
}

// Put writes data under key, a slash separated relative path, and returns its public URL.
func (b *LocalBucket) Put(key string, data []byte) (string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return "", ErrInvalidKey
	}

	target := filepath.Join(b.Dir, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}
	if err := os.WriteFile(target, data, 0o644); err != nil {
		return "", fmt.Errorf("os.WriteFile -> %w", err)
	}

	return b.PublicURL + (&url.URL{Path: clean}).EscapedPath(), nil
}

func (b *LocalBucket) Delete(key string) error {
	clean := path.Clean("/" + key)
	if clean == "/" || strings.Contains(key, "..") {
		return ErrInvalidKey
	}

	err := os.Remove(filepath.Join(b.Dir, filepath.FromSlash(clean)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	return nil
}
