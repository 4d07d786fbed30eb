// Package storage is a bucket/path object store on local disk, standing in
// for the hosted bucket service that keeps brand logos and price-list PDFs.
// Files land under root/<bucket>/<path> and are served publicly under
// baseURL/public/<bucket>/<path>.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrObjectExists = errors.New("object already exists")
	ErrInvalidPath  = errors.New("invalid object path")
)

type Store struct {
	root    string
	baseURL string
}

func New(root, baseURL string) (*Store, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	return &Store{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Root returns the directory the store writes under.
func (s *Store) Root() string {
	return s.root
}

// Upload writes an object. With overwrite false an existing object is an
// error; with overwrite true it is replaced in place.
func (s *Store) Upload(bucket, objectPath string, r io.Reader, overwrite bool) error {
	full, err := s.resolve(bucket, objectPath)
	if err != nil {
		return err
	}

	if !overwrite {
		if _, err := os.Stat(full); err == nil {
			return ErrObjectExists
		}
	}

	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("failed to create bucket dir: %w", err)
	}

	f, err := os.Create(full)
	if err != nil {
		return fmt.Errorf("failed to create object: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		return fmt.Errorf("failed to write object: %w", err)
	}
	return nil
}

// PublicURL returns the URL an object is served under. It does not check
// that the object exists.
func (s *Store) PublicURL(bucket, objectPath string) string {
	return s.baseURL + "/public/" + bucket + "/" + strings.TrimLeft(objectPath, "/")
}

func (s *Store) resolve(bucket, objectPath string) (string, error) {
	if bucket == "" || objectPath == "" {
		return "", ErrInvalidPath
	}
	full := filepath.Join(s.root, bucket, filepath.FromSlash(objectPath))
	// Keep traversal inside the root.
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(os.PathSeparator)) {
		return "", ErrInvalidPath
	}
	return full, nil
}
