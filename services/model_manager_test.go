package services

import (
	"errors"
	"testing"

	"propbook/book"
	"propbook/models"
	"propbook/utils"
	"propbook/view"
)

func typicalBuyers() []*models.Buyer {
	return []*models.Buyer{
		{Name: "Alice Pauline", Phone: "94351253", Priority: models.PriorityNormal},
		{Name: "Benson Meier", Phone: "98765432", Priority: models.PriorityHigh},
		{Name: "Carl Kurz", Phone: "95352563", Priority: models.PriorityLow},
	}
}

func typicalProperties() []*models.Property {
	return []*models.Property{
		{Name: "Sunrise Condo", Address: "1 Marina Way", Price: 850000},
		{Name: "Garden Terrace", Address: "22 Holland Rd", Price: 1500000},
		{Name: "City Loft", Address: "9 Tanjong Pagar", Price: 620000},
	}
}

func newTestModel(t *testing.T) *ModelManager {
	t.Helper()
	m, err := NewModelManager(typicalBuyers(), typicalProperties(), models.NewUserPrefs("data"), utils.Discard())
	if err != nil {
		t.Fatalf("NewModelManager: %v", err)
	}
	return m
}

func buyerNames(items []*models.Buyer) []string {
	out := make([]string, len(items))
	for i, b := range items {
		out[i] = b.Name
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestNewModelManagerRejectsNilPrefs(t *testing.T) {
	_, err := NewModelManager(nil, nil, nil, utils.Discard())
	if !errors.Is(err, book.ErrInvalidArgument) {
		t.Errorf("got %v, want ErrInvalidArgument", err)
	}
}

func TestNewModelManagerRejectsDuplicates(t *testing.T) {
	buyers := typicalBuyers()
	buyers = append(buyers, &models.Buyer{Name: buyers[0].Name, Phone: buyers[0].Phone})

	_, err := NewModelManager(buyers, nil, models.NewUserPrefs("data"), utils.Discard())
	if !errors.Is(err, book.ErrDuplicateRecord) {
		t.Errorf("got %v, want ErrDuplicateRecord", err)
	}
}

func TestNewEmptyModelManager(t *testing.T) {
	m := NewEmptyModelManager(nil)
	if m.BuyerBook().Len() != 0 || m.PropertyBook().Len() != 0 {
		t.Error("empty model should hold no records")
	}
	if m.CurrentlyDisplayedBuyers() != m.FilteredBuyers() {
		t.Error("initial display should be the filtered view")
	}
}

func TestHasBuyer(t *testing.T) {
	m := newTestModel(t)

	if _, err := m.HasBuyer(nil); !errors.Is(err, book.ErrInvalidArgument) {
		t.Errorf("nil buyer: got %v", err)
	}
	ok, err := m.HasBuyer(&models.Buyer{Name: "Alice Pauline", Phone: "94351253", Email: "x@y.z"})
	if err != nil || !ok {
		t.Errorf("same identity: got %v, %v; want true", ok, err)
	}
	ok, _ = m.HasBuyer(&models.Buyer{Name: "Daniel Meier", Phone: "87652533"})
	if ok {
		t.Error("absent buyer reported present")
	}
}

func TestAddBuyerResetsFilter(t *testing.T) {
	m := newTestModel(t)
	_ = m.UpdateFilteredBuyerList(models.BuyerNameContainsKeywords([]string{"Carl"}))
	if m.FilteredBuyers().Len() != 1 {
		t.Fatalf("filtered: got %d, want 1", m.FilteredBuyers().Len())
	}

	daniel := &models.Buyer{Name: "Daniel Meier", Phone: "87652533"}
	if err := m.AddBuyer(daniel); err != nil {
		t.Fatalf("AddBuyer: %v", err)
	}
	if got := m.FilteredBuyers().Len(); got != 4 {
		t.Errorf("filtered after add: got %d, want 4", got)
	}

	if err := m.AddBuyer(daniel); !errors.Is(err, book.ErrDuplicateRecord) {
		t.Errorf("duplicate add: got %v", err)
	}
}

func TestDeleteAndSetBuyer(t *testing.T) {
	m := newTestModel(t)
	buyers := m.BuyerBook().Items()

	if err := m.DeleteBuyer(buyers[1]); err != nil {
		t.Fatalf("DeleteBuyer: %v", err)
	}
	if err := m.DeleteBuyer(buyers[1]); !errors.Is(err, book.ErrRecordNotFound) {
		t.Errorf("second delete: got %v", err)
	}

	edited := &models.Buyer{Name: "Carl Kurz", Phone: "95352563", Email: "carl@example.com"}
	if err := m.SetBuyer(buyers[2], edited); err != nil {
		t.Fatalf("SetBuyer: %v", err)
	}
	if got := m.FilteredBuyers().At(1).Email; got != "carl@example.com" {
		t.Errorf("edited email: got %q", got)
	}
	if err := m.SetBuyer(nil, edited); !errors.Is(err, book.ErrInvalidArgument) {
		t.Errorf("nil target: got %v", err)
	}
}

func TestSortSwitchesDisplayedBuyers(t *testing.T) {
	m := newTestModel(t)

	var switched int
	m.BuyerViews().OnDisplayChange(func(view.List[*models.Buyer]) { switched++ })

	if err := m.UpdateSortedBuyerList(models.BuyersByPriority); err != nil {
		t.Fatalf("UpdateSortedBuyerList: %v", err)
	}

	got := buyerNames(m.CurrentlyDisplayedBuyers().Items())
	want := []string{"Benson Meier", "Alice Pauline", "Carl Kurz"}
	if !equalStrings(got, want) {
		t.Errorf("displayed: got %v, want %v", got, want)
	}
	if switched != 1 {
		t.Errorf("display notifications: got %d, want 1", switched)
	}

	// Filtering afterwards leaves the sorted view on screen.
	_ = m.UpdateFilteredBuyerList(models.BuyerNameContainsKeywords([]string{"Alice"}))
	if m.CurrentlyDisplayedBuyers().Len() != 3 {
		t.Error("filter should not replace the sorted display")
	}

	m.ShowFilteredBuyers()
	if got := buyerNames(m.CurrentlyDisplayedBuyers().Items()); !equalStrings(got, []string{"Alice Pauline"}) {
		t.Errorf("after ShowFilteredBuyers: got %v", got)
	}

	b, err := m.DisplayedBuyer(1)
	if err != nil || b.Name != "Alice Pauline" {
		t.Errorf("DisplayedBuyer(1): got %v, %v", b, err)
	}
}

func TestPropertyOperations(t *testing.T) {
	m := newTestModel(t)

	_ = m.UpdateFilteredPropertyList(models.PropertyPriceWithin(models.PriceRange{Min: 0, Max: 900000}))
	if got := m.FilteredProperties().Len(); got != 2 {
		t.Errorf("filtered properties: got %d, want 2", got)
	}

	if err := m.UpdateSortedPropertyList(models.Reverse(models.PropertiesByPrice)); err != nil {
		t.Fatal(err)
	}
	top, _ := m.DisplayedProperty(1)
	if top.Name != "Garden Terrace" {
		t.Errorf("most expensive first: got %s", top.Name)
	}

	villa := &models.Property{Name: "Hill Villa", Address: "3 Bukit Timah", Price: 3000000}
	if err := m.AddProperty(villa); err != nil {
		t.Fatal(err)
	}
	top, _ = m.DisplayedProperty(1)
	if top != villa {
		t.Errorf("sorted view should pick up the new property, got %s", top.Name)
	}
	if ok, _ := m.HasProperty(villa); !ok {
		t.Error("HasProperty after add: got false")
	}

	if err := m.DeleteProperty(villa); err != nil {
		t.Fatal(err)
	}
	if err := m.SetProperty(villa, villa); !errors.Is(err, book.ErrRecordNotFound) {
		t.Errorf("set absent property: got %v", err)
	}
	if err := m.UpdateSortedPropertyList(nil); !errors.Is(err, book.ErrInvalidArgument) {
		t.Errorf("nil comparator: got %v", err)
	}
}

func TestSetBuyerBookKeepsViewsLive(t *testing.T) {
	m := newTestModel(t)
	filtered := m.FilteredBuyers()

	replacement := []*models.Buyer{{Name: "Elle Meyer", Phone: "9482224"}}
	if err := m.SetBuyerBook(replacement); err != nil {
		t.Fatal(err)
	}
	if filtered.Len() != 1 || filtered.At(0).Name != "Elle Meyer" {
		t.Errorf("held view after reset: got %v", buyerNames(filtered.Items()))
	}

	dup := []*models.Buyer{replacement[0], replacement[0]}
	if err := m.SetBuyerBook(dup); !errors.Is(err, book.ErrDuplicateRecord) {
		t.Errorf("duplicate reset: got %v", err)
	}
}

func TestUserPrefsAccessors(t *testing.T) {
	m := newTestModel(t)

	if err := m.SetUserPrefs(nil); !errors.Is(err, book.ErrInvalidArgument) {
		t.Errorf("nil prefs: got %v", err)
	}
	if err := m.SetBuyerBookFilePath(""); !errors.Is(err, book.ErrInvalidArgument) {
		t.Errorf("empty path: got %v", err)
	}

	_ = m.SetBuyerBookFilePath("books/buyers.json")
	_ = m.SetPropertyBookFilePath("books/properties.json")
	m.SetGuiSettings(models.GuiSettings{WindowWidth: 1200, WindowHeight: 800})

	prefs := m.UserPrefs()
	if prefs.BuyerBookFilePath != "books/buyers.json" || m.PropertyBookFilePath() != "books/properties.json" {
		t.Errorf("paths: got %q and %q", prefs.BuyerBookFilePath, m.PropertyBookFilePath())
	}
	if m.GuiSettings().WindowWidth != 1200 {
		t.Errorf("gui width: got %d", m.GuiSettings().WindowWidth)
	}

	prefs.BuyerBookFilePath = "mutated"
	if m.BuyerBookFilePath() == "mutated" {
		t.Error("UserPrefs should return a copy")
	}
}

func TestModelManagerEqual(t *testing.T) {
	a := newTestModel(t)
	b := newTestModel(t)

	if !a.Equal(a) || !a.Equal(b) {
		t.Fatal("models with the same state should be equal")
	}
	if a.Equal(nil) {
		t.Error("model should not equal nil")
	}

	_ = a.UpdateFilteredBuyerList(models.BuyerNameContainsKeywords([]string{"Alice"}))
	if a.Equal(b) {
		t.Error("different buyer filter should differ")
	}
	_ = b.UpdateFilteredBuyerList(models.BuyerNameContainsKeywords([]string{"Alice"}))
	if !a.Equal(b) {
		t.Error("same buyer filter should be equal again")
	}

	_ = b.UpdateSortedPropertyList(models.PropertiesByName)
	if a.Equal(b) {
		t.Error("different property display mode should differ")
	}

	c := newTestModel(t)
	_ = c.SetBuyerBookFilePath("other.json")
	if c.Equal(newTestModel(t)) {
		t.Error("different prefs should differ")
	}
}
