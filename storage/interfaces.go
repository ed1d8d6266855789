package storage

import (
	"context"
	"errors"

	"propbook/models"
)

// ErrNoData is returned by a load when nothing has been saved yet.
var ErrNoData = errors.New("storage: no data saved yet")

// BookStorage is the interface any persistence backend must satisfy. Books
// are loaded once at startup and saved only when a caller asks.
type BookStorage interface {
	LoadBuyers(ctx context.Context) ([]*models.Buyer, error)
	SaveBuyers(ctx context.Context, buyers []*models.Buyer) error
	LoadProperties(ctx context.Context) ([]*models.Property, error)
	SaveProperties(ctx context.Context, properties []*models.Property) error
	Close() error
}

// Exporter writes the records a user is looking at to an external format.
type Exporter interface {
	ExportBuyers(buyers []*models.Buyer) error
	ExportProperties(properties []*models.Property) error
}
