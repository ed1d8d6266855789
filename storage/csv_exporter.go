package storage

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"propbook/models"
)

var (
	buyerHeader = []string{
		"name", "phone", "email", "address", "priority",
		"budget_min", "budget_max", "desired_characteristics", "created_at",
	}
	propertyHeader = []string{
		"name", "address", "price", "characteristics", "owner_name", "owner_phone", "created_at",
	}
)

// CSVExporter writes a list of records to a CSV file, replacing any
// previous content. It is safe for concurrent use.
type CSVExporter struct {
	mu   sync.Mutex
	path string
}

// NewCSVExporter returns an exporter writing to path. Intermediate
// directories are created on first export.
func NewCSVExporter(path string) *CSVExporter {
	return &CSVExporter{path: path}
}

// ExportBuyers writes buyers in the given order.
func (c *CSVExporter) ExportBuyers(buyers []*models.Buyer) error {
	return c.export(func(w *csv.Writer) error {
		if err := w.Write(buyerHeader); err != nil {
			return err
		}
		for _, b := range buyers {
			min, max := "", ""
			if b.PriceRange != nil {
				min = formatFloat(b.PriceRange.Min)
				max = formatFloat(b.PriceRange.Max)
			}
			row := []string{
				b.Name,
				b.Phone,
				b.Email,
				b.Address,
				string(b.Priority),
				min,
				max,
				b.DesiredCharacteristics.String(),
				formatTime(b.CreatedAt),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

// ExportProperties writes properties in the given order.
func (c *CSVExporter) ExportProperties(properties []*models.Property) error {
	return c.export(func(w *csv.Writer) error {
		if err := w.Write(propertyHeader); err != nil {
			return err
		}
		for _, p := range properties {
			row := []string{
				p.Name,
				p.Address,
				formatFloat(p.Price),
				p.Characteristics.String(),
				p.OwnerName,
				p.OwnerPhone,
				formatTime(p.CreatedAt),
			}
			if err := w.Write(row); err != nil {
				return err
			}
		}
		return nil
	})
}

func (c *CSVExporter) export(write func(w *csv.Writer) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(c.path), 0755); err != nil {
		return fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(c.path)
	if err != nil {
		return fmt.Errorf("csv: create file %q: %w", c.path, err)
	}

	if err := writeCSV(f, write); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

func writeCSV(out io.Writer, write func(w *csv.Writer) error) error {
	w := csv.NewWriter(out)
	if err := write(w); err != nil {
		return fmt.Errorf("csv: write row: %w", err)
	}
	w.Flush()
	return w.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
