package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// PhotoStore keeps employee photos as flat files under a single root
// directory, with generated thumbnails in a sibling root. Names never
// contain path separators; resolve rejects anything that would escape the
// root.
type PhotoStore struct {
	root      string
	thumbRoot string
}

func New(root string, thumbRoot string) (*PhotoStore, error) {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve photo root: %w", err)
	}

	thumbAbs, err := filepath.Abs(thumbRoot)
	if err != nil {
		return nil, fmt.Errorf("resolve thumbnail root: %w", err)
	}

	if err := os.MkdirAll(rootAbs, 0o755); err != nil {
		return nil, fmt.Errorf("create photo root: %w", err)
	}

	if err := os.MkdirAll(thumbAbs, 0o755); err != nil {
		return nil, fmt.Errorf("create thumbnail root: %w", err)
	}

	return &PhotoStore{root: rootAbs, thumbRoot: thumbAbs}, nil
}

func (s *PhotoStore) RootAbs() string {
	return s.root
}

// Save streams r to disk under name and returns the absolute path written.
func (s *PhotoStore) Save(name string, r io.Reader) (string, error) {
	resolved, err := s.resolve(s.root, name)
	if err != nil {
		return "", err
	}

	f, err := os.Create(resolved)
	if err != nil {
		return "", fmt.Errorf("create photo file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		_ = os.Remove(resolved)
		return "", fmt.Errorf("write photo file: %w", err)
	}

	if err := f.Close(); err != nil {
		return "", fmt.Errorf("close photo file: %w", err)
	}

	return resolved, nil
}

func (s *PhotoStore) Open(name string) (*os.File, error) {
	resolved, err := s.resolve(s.root, name)
	if err != nil {
		return nil, err
	}

	return os.Open(resolved)
}

// Remove deletes a photo and its thumbnail. Missing files are not an error:
// removal runs on employee deletion, which must succeed even when no photo
// was ever uploaded.
func (s *PhotoStore) Remove(name string) error {
	resolved, err := s.resolve(s.root, name)
	if err != nil {
		return err
	}

	if err := os.Remove(resolved); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove photo: %w", err)
	}

	thumb, err := s.resolve(s.thumbRoot, thumbnailName(name))
	if err == nil {
		if err := os.Remove(thumb); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("remove thumbnail: %w", err)
		}
	}

	return nil
}

func (s *PhotoStore) resolve(root string, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("photo name cannot be empty")
	}

	if strings.ContainsAny(name, `/\`) || name != filepath.Base(name) {
		return "", fmt.Errorf("photo name %q contains path elements", name)
	}

	resolved := filepath.Join(root, name)
	if !strings.HasPrefix(resolved, root+string(filepath.Separator)) {
		return "", fmt.Errorf("photo name %q escapes storage root", name)
	}

	return resolved, nil
}
