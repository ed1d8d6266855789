package listings

import (
	"net/url"
	"strings"
	"time"

	"propbook/models"
	"propbook/utils"
)

// card is the shape returned by the search-page extraction script.
type card struct {
	Title    string `json:"title"`
	Price    string `json:"price"`
	Location string `json:"location"`
	URL      string `json:"url"`
}

// detail is the shape returned by the detail-page extraction script.
type detail struct {
	Title       string `json:"title"`
	Price       string `json:"price"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

// toRawListings converts cards into RawListings, skipping cards without a
// URL or whose URL was already visited.
func toRawListings(cards []card, visited *utils.KeySet, source string, now time.Time) []*models.RawListing {
	out := make([]*models.RawListing, 0, len(cards))
	for _, c := range cards {
		if c.URL == "" || !visited.Add(c.URL) {
			continue
		}
		out = append(out, &models.RawListing{
			Title:     c.Title,
			RawPrice:  c.Price,
			Location:  c.Location,
			URL:       c.URL,
			ScrapedAt: now,
			Source:    source,
		})
	}
	return out
}

// needsEnrichment reports whether a card is missing fields the detail page
// can supply.
func needsEnrichment(l *models.RawListing) bool {
	return blank(l.Title) || blank(l.RawPrice) || blank(l.Location)
}

// merge fills the missing fields of l from d. The description always comes
// from the detail page.
func merge(l *models.RawListing, d detail) {
	if blank(l.Title) && !blank(d.Title) {
		l.Title = d.Title
	}
	if blank(l.RawPrice) && !blank(d.Price) {
		l.RawPrice = d.Price
	}
	if blank(l.Location) && !blank(d.Location) {
		l.Location = d.Location
	}
	l.Description = d.Description
}

func blank(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.EqualFold(s, "n/a")
}

// sourceOf names a listing site by its host, e.g. "https://www.example.com/s/x"
// becomes "example.com". A URL without a scheme is read as host first.
func sourceOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err == nil && u.Host == "" {
		u, err = url.Parse("//" + rawURL)
	}
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
