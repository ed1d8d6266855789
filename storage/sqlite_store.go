package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"propbook/models"
)

const (
	bucketBuyers     = "buyers"
	bucketProperties = "properties"
)

// SQLiteStorage snapshots each book as one JSON blob in a local SQLite file.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database at path.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	if path == "" {
		path = "propbook.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("sqlite: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS books (
		bucket  TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: create books table: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

func (s *SQLiteStorage) LoadBuyers(ctx context.Context) ([]*models.Buyer, error) {
	var buyers []*models.Buyer
	if err := s.load(ctx, bucketBuyers, &buyers); err != nil {
		return nil, err
	}
	return buyers, nil
}

func (s *SQLiteStorage) SaveBuyers(ctx context.Context, buyers []*models.Buyer) error {
	return s.save(ctx, bucketBuyers, buyers)
}

func (s *SQLiteStorage) LoadProperties(ctx context.Context) ([]*models.Property, error) {
	var properties []*models.Property
	if err := s.load(ctx, bucketProperties, &properties); err != nil {
		return nil, err
	}
	return properties, nil
}

func (s *SQLiteStorage) SaveProperties(ctx context.Context, properties []*models.Property) error {
	return s.save(ctx, bucketProperties, properties)
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

func (s *SQLiteStorage) load(ctx context.Context, bucket string, v any) error {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM books WHERE bucket = ?`, bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNoData
	}
	if err != nil {
		return fmt.Errorf("sqlite: select %s: %w", bucket, err)
	}
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("sqlite: decode %s: %w", bucket, err)
	}
	return nil
}

func (s *SQLiteStorage) save(ctx context.Context, bucket string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("sqlite: encode %s: %w", bucket, err)
	}
	_, err = s.db.ExecContext(ctx, `INSERT INTO books (bucket, payload) VALUES (?, ?)
		ON CONFLICT(bucket) DO UPDATE SET payload = excluded.payload`, bucket, payload)
	if err != nil {
		return fmt.Errorf("sqlite: upsert %s: %w", bucket, err)
	}
	return nil
}
