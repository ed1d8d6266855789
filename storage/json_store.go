package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"propbook/models"
)

type buyerFile struct {
	Buyers []*models.Buyer `json:"buyers"`
}

type propertyFile struct {
	Properties []*models.Property `json:"properties"`
}

// JSONStorage keeps each book in its own JSON file.
type JSONStorage struct {
	buyerPath    string
	propertyPath string
}

// NewJSONStorage returns a store reading and writing the two given files.
func NewJSONStorage(buyerPath, propertyPath string) *JSONStorage {
	return &JSONStorage{buyerPath: buyerPath, propertyPath: propertyPath}
}

func (s *JSONStorage) LoadBuyers(_ context.Context) ([]*models.Buyer, error) {
	var f buyerFile
	if err := readJSON(s.buyerPath, &f); err != nil {
		return nil, err
	}
	return f.Buyers, nil
}

func (s *JSONStorage) SaveBuyers(_ context.Context, buyers []*models.Buyer) error {
	return writeJSON(s.buyerPath, buyerFile{Buyers: buyers})
}

func (s *JSONStorage) LoadProperties(_ context.Context) ([]*models.Property, error) {
	var f propertyFile
	if err := readJSON(s.propertyPath, &f); err != nil {
		return nil, err
	}
	return f.Properties, nil
}

func (s *JSONStorage) SaveProperties(_ context.Context, properties []*models.Property) error {
	return writeJSON(s.propertyPath, propertyFile{Properties: properties})
}

func (s *JSONStorage) Close() error { return nil }

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return ErrNoData
	}
	if err != nil {
		return fmt.Errorf("json: read %q: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("json: decode %q: %w", path, err)
	}
	return nil
}

// writeJSON replaces path through a temp file so a failed write never
// leaves a truncated book behind.
func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("json: create dir: %w", err)
	}
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("json: encode %q: %w", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("json: create temp: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("json: write %q: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("json: close temp: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("json: replace %q: %w", path, err)
	}
	return nil
}
