package ui

import (
	"context"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"propbook/models"
	"propbook/services"
	"propbook/utils"
)

func newManager(t *testing.T) *services.ModelManager {
	t.Helper()
	buyers := []*models.Buyer{
		{Name: "Carol", Phone: "333", Priority: models.PriorityLow},
		{Name: "Alice", Phone: "111", Priority: models.PriorityHigh,
			PriceRange: &models.PriceRange{Min: 100000, Max: 250000.5}},
		{Name: "Bob", Phone: "222", Priority: models.PriorityNormal},
	}
	m, err := services.NewModelManager(buyers, nil, models.NewUserPrefs(t.TempDir()), utils.Discard())
	if err != nil {
		t.Fatalf("NewModelManager: %v", err)
	}
	return m
}

func TestBuyerCard(t *testing.T) {
	th := DefaultTheme()
	b := &models.Buyer{Name: "Alice", Phone: "111", Priority: models.PriorityHigh,
		PriceRange: &models.PriceRange{Min: 100000, Max: 250000.5}}

	out := BuyerCard(th, b, 2)
	for _, want := range []string{"2.", "Alice", "HIGH", "Budget:", "$100000 - $250000.50",
		"Desired Characteristics:", "Not Specified"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}

	b.PriceRange = nil
	b.DesiredCharacteristics = models.Characteristics{"pool", "gym"}
	out = BuyerCard(th, b, 1)
	if !strings.Contains(out, "Budget: Not Specified") {
		t.Errorf("expected unspecified budget:\n%s", out)
	}
	if !strings.Contains(out, "pool, gym") {
		t.Errorf("expected characteristics:\n%s", out)
	}
}

func TestPropertyCard(t *testing.T) {
	p := &models.Property{Name: "Loft", Address: "9 Bay St", Price: 650000, OwnerName: "Dan"}
	out := PropertyCard(DefaultTheme(), p, 1)
	for _, want := range []string{"Loft", "9 Bay St", "$650000", "Characteristics: Not Specified", "Owner: Dan"} {
		if !strings.Contains(out, want) {
			t.Errorf("card missing %q:\n%s", want, out)
		}
	}
}

func TestListPanelFollowsDisplay(t *testing.T) {
	mm := newManager(t)
	panel := NewListPanel("Buyers", DefaultTheme(), mm.BuyerViews(), BuyerCard)
	defer panel.Close()

	if panel.Source() != mm.FilteredBuyers() {
		t.Fatal("panel should start on the filtered view")
	}

	if err := mm.UpdateSortedBuyerList(models.BuyersByName); err != nil {
		t.Fatal(err)
	}
	if panel.Source() != mm.SortedBuyers() {
		t.Fatal("panel should switch to the sorted view")
	}
	if first := panel.Source().At(0).Name; first != "Alice" {
		t.Errorf("first card: got %s, want Alice", first)
	}

	panel.TakeRedraw()
	if err := mm.AddBuyer(&models.Buyer{Name: "Aaron", Phone: "444"}); err != nil {
		t.Fatal(err)
	}
	if !panel.TakeRedraw() {
		t.Error("panel should redraw after the bound view changes")
	}
	if panel.Len() != 4 {
		t.Errorf("Len: got %d, want 4", panel.Len())
	}

	mm.ShowFilteredBuyers()
	if panel.Source() != mm.FilteredBuyers() {
		t.Error("panel should switch back to the filtered view")
	}
}

func TestListPanelCursorClamps(t *testing.T) {
	mm := newManager(t)
	panel := NewListPanel("Buyers", DefaultTheme(), mm.BuyerViews(), BuyerCard)
	defer panel.Close()

	panel.Move(10)
	if panel.Cursor() != 3 {
		t.Errorf("Cursor: got %d, want 3", panel.Cursor())
	}
	panel.Move(-10)
	if panel.Cursor() != 1 {
		t.Errorf("Cursor: got %d, want 1", panel.Cursor())
	}

	panel.Move(2)
	b, _ := mm.DisplayedBuyer(3)
	if err := mm.DeleteBuyer(b); err != nil {
		t.Fatal(err)
	}
	if panel.Cursor() != 2 {
		t.Errorf("Cursor after delete: got %d, want 2", panel.Cursor())
	}

	if !strings.Contains(panel.View(), "Buyers") {
		t.Error("view should carry the panel title")
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(m model, keys ...string) model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}
	return m
}

func TestAppSortFindAndDelete(t *testing.T) {
	mm := newManager(t)
	m := newModel(Deps{Manager: mm})
	defer m.close()

	m = send(m, "n")
	if !mm.BuyerViews().IsSorted() {
		t.Fatal("n should display the sorted view")
	}

	m = send(m, "/", "b", "o", "b", "enter")
	if mm.BuyerViews().IsSorted() {
		t.Fatal("find should return to the filtered view")
	}
	if got := mm.CurrentlyDisplayedBuyers().Len(); got != 1 {
		t.Fatalf("find: got %d buyers, want 1", got)
	}

	m = send(m, "d")
	if mm.BuyerBook().Len() != 2 {
		t.Errorf("delete: book has %d buyers, want 2", mm.BuyerBook().Len())
	}
	if !strings.Contains(m.View(), "Deleted buyer: Bob") {
		t.Errorf("status missing from view:\n%s", m.View())
	}

	m = send(m, "a")
	if got := mm.CurrentlyDisplayedBuyers().Len(); got != 2 {
		t.Errorf("show all: got %d buyers, want 2", got)
	}
}

func TestAppHeaderShowsDisplayMode(t *testing.T) {
	mm := newManager(t)
	m := newModel(Deps{Manager: mm})
	defer m.close()

	if !strings.Contains(m.View(), "(all)") {
		t.Errorf("initial header should say all:\n%s", m.View())
	}

	m = send(m, "/", "a", "l", "i", "c", "e", "enter")
	if !strings.Contains(m.View(), "(filtered 1 of 3)") {
		t.Errorf("header after find:\n%s", m.View())
	}

	m = send(m, "n")
	if !strings.Contains(m.View(), "(sorted)") {
		t.Errorf("header after sort:\n%s", m.View())
	}

	m = send(m, "tab")
	if !strings.Contains(m.View(), "(all)") {
		t.Errorf("properties tab should have its own mode:\n%s", m.View())
	}
}

func TestAppSaveSnapshotsBooks(t *testing.T) {
	mm := newManager(t)
	var saved int
	m := newModel(Deps{
		Manager: mm,
		Save: func(_ context.Context, _ *models.UserPrefs, buyers []*models.Buyer, _ []*models.Property) error {
			saved = len(buyers)
			return nil
		},
	})
	defer m.close()

	next, cmd := m.Update(key("w"))
	if cmd == nil {
		t.Fatal("w should return a save command")
	}
	msg := cmd()
	next, _ = next.Update(msg)
	if saved != 3 {
		t.Errorf("saved %d buyers, want 3", saved)
	}
	if !strings.Contains(next.View(), "Saved 3 buyers") {
		t.Errorf("status missing from view:\n%s", next.View())
	}
}

func TestAppSaveUsesPrefsAtKeypress(t *testing.T) {
	mm := newManager(t)
	var saved *models.UserPrefs
	m := newModel(Deps{
		Manager: mm,
		Save: func(_ context.Context, prefs *models.UserPrefs, _ []*models.Buyer, _ []*models.Property) error {
			saved = prefs
			return nil
		},
	})
	defer m.close()

	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	next, cmd := next.Update(key("w"))
	if cmd == nil {
		t.Fatal("w should return a save command")
	}

	// Bubble Tea runs commands on their own goroutine while Update keeps
	// handling resizes.
	done := make(chan tea.Msg)
	go func() { done <- cmd() }()
	for i := 0; i < 50; i++ {
		next, _ = next.Update(tea.WindowSizeMsg{Width: 120 + i, Height: 50})
	}
	msg := <-done

	if saved == nil {
		t.Fatal("Save was not called")
	}
	if got := saved.GuiSettings; got.WindowWidth != 100 || got.WindowHeight != 40 {
		t.Errorf("saved gui: got %dx%d, want 100x40", got.WindowWidth, got.WindowHeight)
	}
	if got := mm.GuiSettings(); got.WindowWidth != 169 {
		t.Errorf("manager gui width: got %d, want 169", got.WindowWidth)
	}
	next, _ = next.Update(msg)
	if !strings.Contains(next.View(), "Saved 3 buyers") {
		t.Errorf("status missing from view:\n%s", next.View())
	}
}

func TestAppTabSwitchesPanel(t *testing.T) {
	mm := newManager(t)
	m := newModel(Deps{Manager: mm})
	defer m.close()

	m = send(m, "tab")
	if m.tab != tabProperties {
		t.Fatal("tab should switch to properties")
	}
	m = send(m, "p")
	if !mm.PropertyViews().IsSorted() {
		t.Error("p on the properties tab should sort properties")
	}
	if mm.BuyerViews().IsSorted() {
		t.Error("buyer display should be untouched")
	}
}
