// Package storage provides the asset store backing post images. Assets
// live on local disk; the stored reference is the path handed back to
// clients as the post's image URL.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

type DiskStore struct {
	root string
}

// NewDiskStore creates the root directory when missing and returns a store
// rooted there.
func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create asset root: %w", err)
	}
	return &DiskStore{root: root}, nil
}

// Store writes the asset under a random name, keeping the original
// extension, and returns the reference used as the post's image URL.
func (s *DiskStore) Store(r io.Reader, filename string) (string, error) {
	name := uuid.NewString() + filepath.Ext(filename)
	path := filepath.Join(s.root, name)

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("create asset: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("write asset: %w", err)
	}

	return filepath.ToSlash(path), nil
}

// Delete removes a stored asset. References outside the store root are
// rejected so a crafted image URL cannot unlink arbitrary files.
func (s *DiskStore) Delete(ref string) error {
	path := filepath.Clean(filepath.FromSlash(ref))
	root := filepath.Clean(s.root)
	if path != root && !strings.HasPrefix(path, root+string(filepath.Separator)) {
		return fmt.Errorf("asset reference %q outside store root", ref)
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("delete asset: %w", err)
	}
	return nil
}
