// Package media stores uploaded files on the local filesystem under a
// per-kind subdirectory and serves them back by URL path.
package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/chahin-fh/laboissimlocal/internal/config"
)

type Store struct {
	root    string
	baseURL string
}

func NewStore(conf *config.MediaConfig) (*Store, error) {
	if err := os.MkdirAll(conf.Root, 0o755); err != nil {
		return nil, fmt.Errorf("os.MkdirAll -> %w", err)
	}

	return &Store{
		root:    conf.Root,
		baseURL: strings.TrimSuffix(conf.BaseURL, "/"),
	}, nil
}

// Root is the directory the HTTP layer serves as static content.
func (s *Store) Root() string {
	return s.root
}

// Save writes the upload under root/kind with a random name, keeping the
// original extension, and returns the public URL path. Random names keep
// two uploads of "cv.pdf" from clobbering each other.
func (s *Store) Save(kind string, header *multipart.FileHeader) (string, error) {
	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("header.Open -> %w", err)
	}
	defer src.Close()

	name := uuid.NewString() + strings.ToLower(filepath.Ext(header.Filename))

	dir := filepath.Join(s.root, kind)
	if err = os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll -> %w", err)
	}

	dst, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return "", fmt.Errorf("os.Create -> %w", err)
	}
	defer dst.Close()

	if _, err = io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("io.Copy -> %w", err)
	}

	return path.Join(s.baseURL, kind, name), nil
}

// Remove deletes the file behind a URL previously returned by Save.
// Unknown URLs are ignored so a dangling database row never blocks a
// delete.
func (s *Store) Remove(url string) error {
	rel := strings.TrimPrefix(url, s.baseURL+"/")
	if rel == url || rel == "" {
		return nil
	}

	// Reject anything trying to climb out of the media root.
	rel = filepath.FromSlash(path.Clean(rel))
	if strings.HasPrefix(rel, "..") {
		return nil
	}

	if err := os.Remove(filepath.Join(s.root, rel)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("os.Remove -> %w", err)
	}

	return nil
}
