package storage

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalStore writes images to a directory served by the API under /uploads.
type LocalStore struct {
	Dir     string
	BaseURL string // public origin of the API, e.g. http://localhost:8080
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, baseURL string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{Dir: dir, BaseURL: strings.TrimRight(baseURL, "/")}, nil
}

// resolve maps key to a file under Dir; ".." segments cannot climb out of it.
func (s *LocalStore) resolve(key string) (string, string, error) {
	clean := path.Clean("/" + key)
	if clean == "/" {
		return "", "", errors.New("storage key is required")
	}
	return filepath.Join(s.Dir, filepath.FromSlash(clean)), strings.TrimPrefix(clean, "/"), nil
}

func (s *LocalStore) Upload(_ context.Context, key string, body []byte, _ string) (string, error) {
	p, clean, err := s.resolve(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
		return "", fmt.Errorf("failed to create upload dir: %w", err)
	}
	if err := os.WriteFile(p, body, 0644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return fmt.Sprintf("%s/uploads/%s", s.BaseURL, clean), nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, _, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
