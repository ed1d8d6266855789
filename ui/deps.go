package ui

import (
	"context"

	"propbook/models"
	"propbook/services"
	"propbook/utils"
)

// SaveFunc persists snapshots of the prefs and both books. It runs off the
// update loop, so it must only touch its arguments.
type SaveFunc func(ctx context.Context, prefs *models.UserPrefs, buyers []*models.Buyer, properties []*models.Property) error

type Deps struct {
	Manager *services.ModelManager
	Save    SaveFunc
	Logger  *utils.Logger
}
