package services

import (
	"testing"
	"time"

	"propbook/models"
	"propbook/utils"
)

func newTestCleaner() *Cleaner {
	c := NewCleaner(utils.Discard())
	c.now = func() time.Time { return time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC) }
	return c
}

func TestCleanerParsePrice(t *testing.T) {
	c := newTestCleaner()

	tests := []struct {
		raw  string
		want float64
	}{
		{"$850,000", 850000},
		{"S$ 1.25m", 1250000},
		{"From $980k (negotiable)", 980000},
		{"2.4 million", 2400000},
		{"", 0},
		{"Price on request", 0},
		{"$1,200.50", 1200.50},
	}

	for _, tt := range tests {
		got := c.parsePrice(tt.raw)
		if got != tt.want {
			t.Errorf("parsePrice(%q) = %.2f; want %.2f", tt.raw, got, tt.want)
		}
	}
}

func TestExtractCharacteristics(t *testing.T) {
	got := extractCharacteristics("Bright unit with Pool, gym and a sea view. Near MRT")
	want := "pool; gym; sea view; near mrt"
	if got.String() != want {
		t.Errorf("got %q, want %q", got.String(), want)
	}
	if extractCharacteristics("plain box") != nil {
		t.Error("no feature words should yield nil")
	}
}

func TestCleanerDropsMissingFields(t *testing.T) {
	c := newTestCleaner()
	raw := []*models.RawListing{
		{Title: "N/A", Location: "1 Marina Way", URL: "https://listings.example.com/1"},
		{Title: "Sunrise Condo", Location: "", URL: "https://listings.example.com/2"},
		{Title: "  Garden   Terrace ", Location: "22 Holland Rd", RawPrice: "$1.5m", URL: "https://listings.example.com/3"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Fatalf("expected 1 property, got %d", len(cleaned))
	}
	p := cleaned[0]
	if p.Name != "Garden Terrace" || p.Price != 1500000 {
		t.Errorf("got %+v", p)
	}
	if !p.CreatedAt.Equal(time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("CreatedAt: got %v", p.CreatedAt)
	}
}

func TestCleanerDeduplicatesIdentity(t *testing.T) {
	c := newTestCleaner()
	raw := []*models.RawListing{
		{Title: "City Loft", Location: "9 Tanjong Pagar", URL: "https://listings.example.com/a"},
		{Title: "City  Loft", Location: "9 Tanjong Pagar ", URL: "https://listings.example.com/b"},
	}

	cleaned := c.Clean(raw)
	if len(cleaned) != 1 {
		t.Errorf("expected 1 property after deduplication, got %d", len(cleaned))
	}
}
