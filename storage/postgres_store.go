package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"propbook/models"
	"propbook/utils"
)

// PostgresStorage persists both books to PostgreSQL, one row per record.
// A position column keeps insertion order across a save and load.
type PostgresStorage struct {
	db *sql.DB
}

// NewPostgresStorage opens a connection to PostgreSQL, waits for it to
// answer, runs schema migrations and returns a ready-to-use store.
func NewPostgresStorage(ctx context.Context, dsn string, logger *utils.Logger) (*PostgresStorage, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("postgres: open: %w", err)
	}

	retry := &utils.RetryConfig{MaxAttempts: 5, BaseDelay: 500 * time.Millisecond, Logger: logger}
	if err := retry.Do(ctx, "postgres-ping", func() error { return db.PingContext(ctx) }); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	ps := &PostgresStorage{db: db}
	if err := ps.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("postgres: migrate: %w", err)
	}

	return ps, nil
}

func (ps *PostgresStorage) migrate(ctx context.Context) error {
	_, err := ps.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS buyers (
			position        INTEGER      NOT NULL,
			name            TEXT         NOT NULL,
			phone           TEXT         NOT NULL,
			email           TEXT         NOT NULL DEFAULT '',
			address         TEXT         NOT NULL DEFAULT '',
			priority        VARCHAR(10)  NOT NULL DEFAULT 'normal',
			budget_min      NUMERIC(14,2),
			budget_max      NUMERIC(14,2),
			characteristics TEXT[]       NOT NULL DEFAULT '{}',
			created_at      TIMESTAMPTZ  NOT NULL DEFAULT NOW(),
			PRIMARY KEY (name, phone)
		);

		CREATE TABLE IF NOT EXISTS properties (
			position        INTEGER       NOT NULL,
			name            TEXT          NOT NULL,
			address         TEXT          NOT NULL,
			price           NUMERIC(14,2) NOT NULL DEFAULT 0,
			characteristics TEXT[]        NOT NULL DEFAULT '{}',
			owner_name      TEXT          NOT NULL DEFAULT '',
			owner_phone     TEXT          NOT NULL DEFAULT '',
			created_at      TIMESTAMPTZ   NOT NULL DEFAULT NOW(),
			PRIMARY KEY (name, address)
		);

		CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(price);
	`)
	return err
}

func (ps *PostgresStorage) LoadBuyers(ctx context.Context) ([]*models.Buyer, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT name, phone, email, address, priority, budget_min, budget_max, characteristics, created_at
		FROM buyers
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch buyers: %w", err)
	}
	defer rows.Close()

	var buyers []*models.Buyer
	for rows.Next() {
		b := &models.Buyer{}
		var min, max sql.NullFloat64
		var priority string
		var tags pq.StringArray
		if err := rows.Scan(&b.Name, &b.Phone, &b.Email, &b.Address, &priority,
			&min, &max, &tags, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan buyer: %w", err)
		}
		b.Priority = models.Priority(priority)
		if min.Valid && max.Valid {
			b.PriceRange = &models.PriceRange{Min: min.Float64, Max: max.Float64}
		}
		b.DesiredCharacteristics = fromTagArray(tags)
		buyers = append(buyers, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(buyers) == 0 {
		return nil, ErrNoData
	}
	return buyers, nil
}

// SaveBuyers replaces the stored buyers with buyers in one transaction.
func (ps *PostgresStorage) SaveBuyers(ctx context.Context, buyers []*models.Buyer) error {
	return ps.replaceAll(ctx, "buyers", len(buyers), 10, func(i int) []any {
		b := buyers[i]
		var min, max sql.NullFloat64
		if b.PriceRange != nil {
			min = sql.NullFloat64{Float64: b.PriceRange.Min, Valid: true}
			max = sql.NullFloat64{Float64: b.PriceRange.Max, Valid: true}
		}
		return []any{i, b.Name, b.Phone, b.Email, b.Address, string(b.Priority),
			min, max, tagArray(b.DesiredCharacteristics), createdAt(b.CreatedAt)}
	}, "position, name, phone, email, address, priority, budget_min, budget_max, characteristics, created_at")
}

func (ps *PostgresStorage) LoadProperties(ctx context.Context) ([]*models.Property, error) {
	rows, err := ps.db.QueryContext(ctx, `
		SELECT name, address, price, characteristics, owner_name, owner_phone, created_at
		FROM properties
		ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("postgres: fetch properties: %w", err)
	}
	defer rows.Close()

	var properties []*models.Property
	for rows.Next() {
		p := &models.Property{}
		var tags pq.StringArray
		if err := rows.Scan(&p.Name, &p.Address, &p.Price, &tags,
			&p.OwnerName, &p.OwnerPhone, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("postgres: scan property: %w", err)
		}
		p.Characteristics = fromTagArray(tags)
		properties = append(properties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(properties) == 0 {
		return nil, ErrNoData
	}
	return properties, nil
}

// SaveProperties replaces the stored properties with properties in one
// transaction.
func (ps *PostgresStorage) SaveProperties(ctx context.Context, properties []*models.Property) error {
	return ps.replaceAll(ctx, "properties", len(properties), 8, func(i int) []any {
		p := properties[i]
		return []any{i, p.Name, p.Address, p.Price, tagArray(p.Characteristics),
			p.OwnerName, p.OwnerPhone, createdAt(p.CreatedAt)}
	}, "position, name, address, price, characteristics, owner_name, owner_phone, created_at")
}

func (ps *PostgresStorage) Close() error {
	return ps.db.Close()
}

// replaceAll clears table and batch-inserts n rows of width columns.
func (ps *PostgresStorage) replaceAll(ctx context.Context, table string, n, width int,
	row func(i int) []any, columns string) (retErr error) {
	tx, err := ps.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("postgres: begin: %w", err)
	}
	defer func() {
		if retErr != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
		return fmt.Errorf("postgres: clear %s: %w", table, err)
	}

	const batchSize = 50
	for start := 0; start < n; start += batchSize {
		end := start + batchSize
		if end > n {
			end = n
		}
		query, args := insertBatch(table, columns, width, start, end, row)
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("postgres: insert %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("postgres: commit: %w", err)
	}
	return nil
}

func insertBatch(table, columns string, width, start, end int, row func(i int) []any) (string, []any) {
	valueStrings := make([]string, 0, end-start)
	valueArgs := make([]any, 0, (end-start)*width)

	for i := start; i < end; i++ {
		base := (i - start) * width
		placeholders := make([]string, width)
		for c := range placeholders {
			placeholders[c] = fmt.Sprintf("$%d", base+c+1)
		}
		valueStrings = append(valueStrings, "("+strings.Join(placeholders, ",")+")")
		valueArgs = append(valueArgs, row(i)...)
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", table, columns, strings.Join(valueStrings, ","))
	return query, valueArgs
}

// tagArray stores characteristics as a TEXT[] so tags may contain ',' or ';'.
// A nil array would be written as NULL, so empty becomes '{}'.
func tagArray(c models.Characteristics) pq.StringArray {
	if len(c) == 0 {
		return pq.StringArray{}
	}
	return pq.StringArray(c)
}

func fromTagArray(a pq.StringArray) models.Characteristics {
	if len(a) == 0 {
		return nil
	}
	return models.Characteristics(a)
}

func createdAt(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
