package state

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BartekS5/uilm/pkg/models"
)

// FileStore keeps the state in <dir>/uilm_converter_state.json.
type FileStore struct {
	path string
}

func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = "."
	}
	return &FileStore{path: filepath.Join(dir, StorageKey+".json")}
}

// Path returns the state file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Save(_ context.Context, cfg models.Configuration) error {
	data, err := encode(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating state dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

func (s *FileStore) Load(_ context.Context) (models.Configuration, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return models.Configuration{}, ErrNotFound
	}
	if err != nil {
		return models.Configuration{}, fmt.Errorf("reading state: %w", err)
	}
	return decode(data)
}

func (s *FileStore) Clear(_ context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("clearing state: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }
