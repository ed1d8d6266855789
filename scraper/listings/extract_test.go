package listings

import (
	"strings"
	"testing"
	"time"

	"propbook/models"
	"propbook/utils"
)

func TestToRawListingsSkipsVisited(t *testing.T) {
	visited := utils.NewKeySet()
	visited.Add("https://homes.example.com/l/1")
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	cards := []card{
		{Title: "Old", URL: "https://homes.example.com/l/1"},
		{Title: "Loft", Price: "$700k", Location: "9 Bay St", URL: "https://homes.example.com/l/2"},
		{Title: "Loft again", URL: "https://homes.example.com/l/2"},
		{Title: "No link"},
	}

	got := toRawListings(cards, visited, "homes.example.com", now)
	if len(got) != 1 {
		t.Fatalf("got %d listings, want 1", len(got))
	}
	if got[0].Title != "Loft" || got[0].Source != "homes.example.com" || !got[0].ScrapedAt.Equal(now) {
		t.Errorf("got %+v", got[0])
	}
	if visited.Size() != 2 {
		t.Errorf("visited size: got %d, want 2", visited.Size())
	}
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name string
		in   models.RawListing
		d    detail
		want models.RawListing
	}{
		{
			name: "fills missing fields",
			in:   models.RawListing{Title: "N/A", RawPrice: "", Location: "Marina"},
			d:    detail{Title: "Harbour View", Price: "$1.2m", Location: "Elsewhere", Description: "Sea view"},
			want: models.RawListing{Title: "Harbour View", RawPrice: "$1.2m", Location: "Marina", Description: "Sea view"},
		},
		{
			name: "keeps card fields",
			in:   models.RawListing{Title: "Loft", RawPrice: "$500k", Location: "Bay"},
			d:    detail{Title: "Other", Price: "$1", Location: "X", Description: "Pool"},
			want: models.RawListing{Title: "Loft", RawPrice: "$500k", Location: "Bay", Description: "Pool"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := tt.in
			if !needsEnrichment(&l) && tt.name == "fills missing fields" {
				t.Error("expected listing to need enrichment")
			}
			merge(&l, tt.d)
			if l != tt.want {
				t.Errorf("got %+v, want %+v", l, tt.want)
			}
		})
	}
}

func TestSourceOf(t *testing.T) {
	tests := map[string]string{
		"https://www.Homes.example.com/search?q=x":     "homes.example.com",
		"http://listings.test/s/marina":                "listings.test",
		"example.org":                                  "example.org",
		"example.org/s/marina?page=2":                  "example.org",
		"https://agent@www.homes.example.com:8443/l/1": "homes.example.com",
		"http://[::1]:8080/search":                     "::1",
		"http://bad host/%zz":                          "",
	}
	for in, want := range tests {
		if got := sourceOf(in); got != want {
			t.Errorf("sourceOf(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestCardScriptCarriesLimit(t *testing.T) {
	if !strings.Contains(cardScript(7), "var limit = 7;") {
		t.Error("limit not embedded in script")
	}
}

func TestFindChromeBinaryPrefersConfigured(t *testing.T) {
	if got := findChromeBinary("/opt/chrome"); got != "/opt/chrome" {
		t.Errorf("got %q, want /opt/chrome", got)
	}
}
