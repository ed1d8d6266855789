package cli

import (
	"context"
	"errors"
	"fmt"

	"propbook/config"
	"propbook/models"
	"propbook/services"
	"propbook/storage"
	"propbook/utils"
)

// session is the state one command runs against: the loaded model and the
// stores it came from.
type session struct {
	cfg     *config.Config
	logger  *utils.Logger
	prefs   *storage.PrefsStore
	store   storage.BookStorage
	manager *services.ModelManager
}

// openSession loads prefs, opens the configured book storage and fills a
// ModelManager from it. A book that cannot be read is logged and starts
// empty so the user is never locked out.
func openSession(ctx context.Context, cfg *config.Config, logger *utils.Logger) (*session, error) {
	prefsStore := storage.NewPrefsStore(cfg.PrefsPath, cfg.DataDir)
	prefs, err := prefsStore.Load()
	if err != nil {
		logger.Warn("[session] Could not read preferences, using defaults: %v", err)
		prefs = models.NewUserPrefs(cfg.DataDir)
	}

	manager, err := services.NewModelManager(nil, nil, prefs, logger)
	if err != nil {
		return nil, err
	}

	store, err := storage.Open(ctx, cfg, manager.UserPrefs(), logger)
	if err != nil {
		return nil, err
	}

	s := &session{cfg: cfg, logger: logger, prefs: prefsStore, store: store, manager: manager}
	s.loadBooks(ctx)
	return s, nil
}

func (s *session) loadBooks(ctx context.Context) {
	buyers, err := s.store.LoadBuyers(ctx)
	switch {
	case errors.Is(err, storage.ErrNoData):
		s.logger.Debug("[session] No buyer book saved yet, starting empty")
	case err != nil:
		s.logger.Warn("[session] Buyer book unreadable, starting empty: %v", err)
	default:
		if err := s.manager.SetBuyerBook(buyers); err != nil {
			s.logger.Warn("[session] Buyer book rejected, starting empty: %v", err)
		}
	}

	properties, err := s.store.LoadProperties(ctx)
	switch {
	case errors.Is(err, storage.ErrNoData):
		s.logger.Debug("[session] No property book saved yet, starting empty")
	case err != nil:
		s.logger.Warn("[session] Property book unreadable, starting empty: %v", err)
	default:
		if err := s.manager.SetPropertyBook(properties); err != nil {
			s.logger.Warn("[session] Property book rejected, starting empty: %v", err)
		}
	}
}

// save writes prefs and both books.
func (s *session) save(ctx context.Context) error {
	if err := s.prefs.Save(s.manager.UserPrefs()); err != nil {
		return err
	}
	if err := s.store.SaveBuyers(ctx, s.manager.BuyerBook().Items()); err != nil {
		return fmt.Errorf("save buyers: %w", err)
	}
	if err := s.store.SaveProperties(ctx, s.manager.PropertyBook().Items()); err != nil {
		return fmt.Errorf("save properties: %w", err)
	}
	s.logger.Debug("[session] Saved %d buyers and %d properties",
		s.manager.BuyerBook().Len(), s.manager.PropertyBook().Len())
	return nil
}

func (s *session) close() {
	if err := s.store.Close(); err != nil {
		s.logger.Warn("[session] Closing storage: %v", err)
	}
}
