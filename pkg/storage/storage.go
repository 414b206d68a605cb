// Package storage implements the image object store backing product photos.
// Files are written to a local directory that the server exposes under a
// public URL path, so a stored name maps directly to a fetchable URL.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Store is a disk-backed object store for uploaded images
type Store struct {
	dir        string
	publicBase string
}

// New creates a Store rooted at dir. publicBase is the URL prefix the
// directory is served under, e.g. "http://localhost:8080/images".
func New(dir, publicBase string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}
	return &Store{
		dir:        dir,
		publicBase: strings.TrimRight(publicBase, "/"),
	}, nil
}

// GenerateName returns a collision-resistant object name preserving the
// original file extension.
func GenerateName(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	return uuid.New().String() + ext
}

// Save writes the blob under the given name and returns its public URL.
// A failed write leaves no partial object behind.
func (s *Store) Save(name string, r io.Reader) (string, error) {
	// Names are generated, never caller-controlled paths.
	name = filepath.Base(name)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("failed to create object %q: %w", name, err)
	}

	if _, err := io.Copy(dst, r); err != nil {
		dst.Close()
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write object %q: %w", name, err)
	}

	if err := dst.Close(); err != nil {
		os.Remove(dst.Name())
		return "", fmt.Errorf("failed to write object %q: %w", name, err)
	}

	return s.PublicURL(name), nil
}

// PublicURL returns the publicly resolvable URL for a stored object name
func (s *Store) PublicURL(name string) string {
	return s.publicBase + "/" + name
}

// Dir returns the directory objects are stored in
func (s *Store) Dir() string {
	return s.dir
}
