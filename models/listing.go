package models

import "time"

// RawListing holds unprocessed data pulled from a listing site by the
// importer. The cleaner turns it into a Property before it reaches a book.
type RawListing struct {
	Title       string
	RawPrice    string
	Location    string
	URL         string
	Description string
	ScrapedAt   time.Time
	Source      string
}

// InsightReport holds the computed analytics over both books.
type InsightReport struct {
	TotalProperties      int
	TotalBuyers          int
	AveragePrice         float64
	MinPrice             float64
	MaxPrice             float64
	MostExpensive        *Property
	PropertiesByLocation map[string]int
	BuyersByPriority     map[Priority]int
	AffordableProperties int
	BuyersWithoutBudget  int
}
