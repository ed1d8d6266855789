package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"propbook/models"
)

// PrefsStore reads and writes user preferences as YAML.
type PrefsStore struct {
	path    string
	dataDir string
}

// NewPrefsStore returns a store for the preferences file at path. Defaults
// for a missing file are rooted at dataDir.
func NewPrefsStore(path, dataDir string) *PrefsStore {
	return &PrefsStore{path: path, dataDir: dataDir}
}

// Path returns the file the store reads from.
func (s *PrefsStore) Path() string { return s.path }

// Load returns the stored preferences, or defaults if the file does not
// exist yet. Fields missing from the file keep their default value.
func (s *PrefsStore) Load() (*models.UserPrefs, error) {
	prefs := models.NewUserPrefs(s.dataDir)

	b, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return prefs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("prefs: read %q: %w", s.path, err)
	}
	if err := yaml.Unmarshal(b, prefs); err != nil {
		return nil, fmt.Errorf("prefs: decode %q: %w", s.path, err)
	}
	return prefs, nil
}

// Save writes prefs to the store's file.
func (s *PrefsStore) Save(prefs *models.UserPrefs) error {
	if prefs == nil {
		return errors.New("prefs: nil preferences")
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("prefs: create dir: %w", err)
	}
	b, err := yaml.Marshal(prefs)
	if err != nil {
		return fmt.Errorf("prefs: encode: %w", err)
	}
	if err := os.WriteFile(s.path, b, 0o644); err != nil {
		return fmt.Errorf("prefs: write %q: %w", s.path, err)
	}
	return nil
}
