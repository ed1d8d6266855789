package services

import (
	"fmt"

	"propbook/book"
	"propbook/models"
	"propbook/utils"
	"propbook/view"
)

// ModelManager is the in-memory model behind every command and panel: the
// buyer and property books, their filtered/sorted views, and user prefs.
// All calls are expected on the single thread that drives the display.
type ModelManager struct {
	logger *utils.Logger

	userPrefs  *models.UserPrefs
	buyers     *book.Book[*models.Buyer]
	properties *book.Book[*models.Property]

	buyerViews    *view.State[*models.Buyer]
	propertyViews *view.State[*models.Property]
}

// NewModelManager copies the given records and prefs into a new model.
func NewModelManager(buyers []*models.Buyer, properties []*models.Property,
	prefs *models.UserPrefs, logger *utils.Logger) (*ModelManager, error) {
	if prefs == nil {
		return nil, fmt.Errorf("model: new: nil user prefs: %w", book.ErrInvalidArgument)
	}
	if logger == nil {
		logger = utils.Discard()
	}

	logger.Debug("[model] Initializing with %d buyers, %d properties and prefs %+v",
		len(buyers), len(properties), *prefs)

	buyerBook, err := book.From(buyers)
	if err != nil {
		return nil, fmt.Errorf("model: buyers: %w", err)
	}
	propertyBook, err := book.From(properties)
	if err != nil {
		return nil, fmt.Errorf("model: properties: %w", err)
	}

	return &ModelManager{
		logger:        logger,
		userPrefs:     prefs.Clone(),
		buyers:        buyerBook,
		properties:    propertyBook,
		buyerViews:    view.NewState(buyerBook),
		propertyViews: view.NewState(propertyBook),
	}, nil
}

// NewEmptyModelManager returns a model with empty books and default prefs.
func NewEmptyModelManager(logger *utils.Logger) *ModelManager {
	m, _ := NewModelManager(nil, nil, models.NewUserPrefs("data"), logger)
	return m
}

// SetUserPrefs overwrites the current prefs with a copy of prefs.
func (m *ModelManager) SetUserPrefs(prefs *models.UserPrefs) error {
	if prefs == nil {
		return fmt.Errorf("model: set user prefs: %w", book.ErrInvalidArgument)
	}
	m.userPrefs.ResetData(prefs)
	return nil
}

// UserPrefs returns a copy of the current prefs.
func (m *ModelManager) UserPrefs() *models.UserPrefs {
	return m.userPrefs.Clone()
}

func (m *ModelManager) GuiSettings() models.GuiSettings {
	return m.userPrefs.GuiSettings
}

func (m *ModelManager) SetGuiSettings(s models.GuiSettings) {
	m.userPrefs.GuiSettings = s
}

func (m *ModelManager) BuyerBookFilePath() string {
	return m.userPrefs.BuyerBookFilePath
}

func (m *ModelManager) SetBuyerBookFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("model: set buyer book path: empty path: %w", book.ErrInvalidArgument)
	}
	m.userPrefs.BuyerBookFilePath = path
	return nil
}

func (m *ModelManager) PropertyBookFilePath() string {
	return m.userPrefs.PropertyBookFilePath
}

func (m *ModelManager) SetPropertyBookFilePath(path string) error {
	if path == "" {
		return fmt.Errorf("model: set property book path: empty path: %w", book.ErrInvalidArgument)
	}
	m.userPrefs.PropertyBookFilePath = path
	return nil
}

// SetBuyerBook replaces every buyer. Views stay bound and show the new data.
func (m *ModelManager) SetBuyerBook(buyers []*models.Buyer) error {
	if err := m.buyers.ResetData(buyers); err != nil {
		return fmt.Errorf("model: set buyer book: %w", err)
	}
	m.logger.Debug("[model] Buyer book reset to %d records", len(buyers))
	return nil
}

// BuyerBook returns the backing buyer book. Callers only read from it.
func (m *ModelManager) BuyerBook() *book.Book[*models.Buyer] {
	return m.buyers
}

func (m *ModelManager) HasBuyer(b *models.Buyer) (bool, error) {
	if b == nil {
		return false, fmt.Errorf("model: has buyer: %w", book.ErrInvalidArgument)
	}
	return m.buyers.Contains(b), nil
}

func (m *ModelManager) DeleteBuyer(target *models.Buyer) error {
	if err := m.buyers.Remove(target); err != nil {
		return err
	}
	m.logger.Debug("[model] Deleted buyer %s", target.IdentityKey())
	return nil
}

// AddBuyer adds b and resets the buyer filter so the new record is visible.
func (m *ModelManager) AddBuyer(b *models.Buyer) error {
	if err := m.buyers.Add(b); err != nil {
		return err
	}
	m.logger.Debug("[model] Added buyer %s", b.IdentityKey())
	return m.UpdateFilteredBuyerList(models.ShowAllBuyers)
}

func (m *ModelManager) SetBuyer(target, edited *models.Buyer) error {
	if target == nil || edited == nil {
		return fmt.Errorf("model: set buyer: %w", book.ErrInvalidArgument)
	}
	return m.buyers.Replace(target, edited)
}

func (m *ModelManager) FilteredBuyers() view.List[*models.Buyer] {
	return m.buyerViews.Filtered()
}

func (m *ModelManager) UpdateFilteredBuyerList(p view.Predicate[*models.Buyer]) error {
	return m.buyerViews.SetFilterPredicate(p)
}

func (m *ModelManager) SortedBuyers() view.List[*models.Buyer] {
	return m.buyerViews.Sorted()
}

func (m *ModelManager) UpdateSortedBuyerList(c view.Comparator[*models.Buyer]) error {
	return m.buyerViews.SetSortComparator(c)
}

// ShowFilteredBuyers switches the buyer display back to the filtered view.
func (m *ModelManager) ShowFilteredBuyers() {
	m.buyerViews.ShowFiltered()
}

// CurrentlyDisplayedBuyers returns the sorted view once a sort has been
// requested, the filtered view before that.
func (m *ModelManager) CurrentlyDisplayedBuyers() view.List[*models.Buyer] {
	return m.buyerViews.CurrentDisplay()
}

// DisplayedBuyer resolves a 1-based index on the displayed buyer list.
func (m *ModelManager) DisplayedBuyer(index int) (*models.Buyer, error) {
	return m.buyerViews.DisplayedAt(index)
}

// BuyerViews exposes the buyer view state so panels can subscribe to it.
func (m *ModelManager) BuyerViews() *view.State[*models.Buyer] {
	return m.buyerViews
}

// SetPropertyBook replaces every property. Views stay bound and show the
// new data.
func (m *ModelManager) SetPropertyBook(properties []*models.Property) error {
	if err := m.properties.ResetData(properties); err != nil {
		return fmt.Errorf("model: set property book: %w", err)
	}
	m.logger.Debug("[model] Property book reset to %d records", len(properties))
	return nil
}

func (m *ModelManager) PropertyBook() *book.Book[*models.Property] {
	return m.properties
}

func (m *ModelManager) HasProperty(p *models.Property) (bool, error) {
	if p == nil {
		return false, fmt.Errorf("model: has property: %w", book.ErrInvalidArgument)
	}
	return m.properties.Contains(p), nil
}

func (m *ModelManager) DeleteProperty(target *models.Property) error {
	if err := m.properties.Remove(target); err != nil {
		return err
	}
	m.logger.Debug("[model] Deleted property %s", target.IdentityKey())
	return nil
}

// AddProperty adds p and resets the property filter so it is visible.
func (m *ModelManager) AddProperty(p *models.Property) error {
	if err := m.properties.Add(p); err != nil {
		return err
	}
	m.logger.Debug("[model] Added property %s", p.IdentityKey())
	return m.UpdateFilteredPropertyList(models.ShowAllProperties)
}

func (m *ModelManager) SetProperty(target, edited *models.Property) error {
	if target == nil || edited == nil {
		return fmt.Errorf("model: set property: %w", book.ErrInvalidArgument)
	}
	return m.properties.Replace(target, edited)
}

func (m *ModelManager) FilteredProperties() view.List[*models.Property] {
	return m.propertyViews.Filtered()
}

func (m *ModelManager) UpdateFilteredPropertyList(p view.Predicate[*models.Property]) error {
	return m.propertyViews.SetFilterPredicate(p)
}

func (m *ModelManager) SortedProperties() view.List[*models.Property] {
	return m.propertyViews.Sorted()
}

func (m *ModelManager) UpdateSortedPropertyList(c view.Comparator[*models.Property]) error {
	return m.propertyViews.SetSortComparator(c)
}

func (m *ModelManager) ShowFilteredProperties() {
	m.propertyViews.ShowFiltered()
}

func (m *ModelManager) CurrentlyDisplayedProperties() view.List[*models.Property] {
	return m.propertyViews.CurrentDisplay()
}

func (m *ModelManager) DisplayedProperty(index int) (*models.Property, error) {
	return m.propertyViews.DisplayedAt(index)
}

func (m *ModelManager) PropertyViews() *view.State[*models.Property] {
	return m.propertyViews
}

// Equal reports whether prefs, both books and both view states match.
// Only tests rely on it.
func (m *ModelManager) Equal(o *ModelManager) bool {
	if m == o {
		return true
	}
	if m == nil || o == nil {
		return false
	}
	return m.userPrefs.Equal(o.userPrefs) &&
		m.buyers.Equal(o.buyers) &&
		m.properties.Equal(o.properties) &&
		m.buyerViews.Equal(o.buyerViews) &&
		m.propertyViews.Equal(o.propertyViews)
}
