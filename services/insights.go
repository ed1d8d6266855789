package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"propbook/models"
	"propbook/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(properties []*models.Property, buyers []*models.Buyer) *models.InsightReport {
	report := &models.InsightReport{
		PropertiesByLocation: make(map[string]int),
		BuyersByPriority:     make(map[models.Priority]int),
	}

	report.TotalProperties = len(properties)
	report.TotalBuyers = len(buyers)

	var budgets []models.PriceRange
	for _, b := range buyers {
		report.BuyersByPriority[b.Priority]++
		if b.PriceRange == nil {
			report.BuyersWithoutBudget++
			continue
		}
		budgets = append(budgets, *b.PriceRange)
	}

	var priced []*models.Property
	for _, p := range properties {
		if p.Price > 0 {
			priced = append(priced, p)
		}
		if loc := locationOf(p.Address); loc != "" {
			report.PropertiesByLocation[loc]++
		}
		for _, r := range budgets {
			if r.Contains(p.Price) {
				report.AffordableProperties++
				break
			}
		}
	}

	// Price stats (only properties with price > 0)
	if len(priced) > 0 {
		report.MinPrice = priced[0].Price
		report.MaxPrice = priced[0].Price
		report.MostExpensive = priced[0]
		var total float64
		for _, p := range priced {
			total += p.Price
			if p.Price < report.MinPrice {
				report.MinPrice = p.Price
			}
			if p.Price > report.MaxPrice {
				report.MaxPrice = p.Price
				report.MostExpensive = p
			}
		}
		report.AveragePrice = round2(total / float64(len(priced)))
		report.MinPrice = round2(report.MinPrice)
		report.MaxPrice = round2(report.MaxPrice)
	}

	s.logger.Debug("[insights] %d properties, %d buyers, %d affordable",
		report.TotalProperties, report.TotalBuyers, report.AffordableProperties)
	return report
}

func (s *InsightService) Print(w io.Writer, r *models.InsightReport) {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n", sep)
	fmt.Fprintf(w, "\033[1;35m  PROPERTY BOOK INSIGHTS\033[0m\n")
	fmt.Fprintf(w, "\033[1;35m%s\033[0m\n\n", sep)

	fmt.Fprintf(w, "\033[1;33m  Overview\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	fmt.Fprintf(w, "  Properties listed      : \033[1m%d\033[0m\n", r.TotalProperties)
	fmt.Fprintf(w, "  Buyers tracked         : \033[1m%d\033[0m\n", r.TotalBuyers)
	fmt.Fprintf(w, "  Within a buyer budget  : \033[1m%d\033[0m\n", r.AffordableProperties)
	fmt.Fprintf(w, "  Buyers without budget  : \033[1m%d\033[0m\n", r.BuyersWithoutBudget)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Asking Prices\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if r.AveragePrice > 0 {
		fmt.Fprintf(w, "  Average price : \033[1;32m$%.2f\033[0m\n", r.AveragePrice)
		fmt.Fprintf(w, "  Minimum price : \033[1;32m$%.2f\033[0m\n", r.MinPrice)
		fmt.Fprintf(w, "  Maximum price : \033[1;32m$%.2f\033[0m\n", r.MaxPrice)
	} else {
		fmt.Fprintf(w, "  No price data available\n")
	}
	fmt.Fprintln(w)

	if r.MostExpensive != nil {
		fmt.Fprintf(w, "\033[1;33m  Most Expensive Property\033[0m\n")
		fmt.Fprintf(w, "  %s\n", thin)
		fmt.Fprintf(w, "  %s\n", truncate(r.MostExpensive.Name, 50))
		fmt.Fprintf(w, "  Address : %s\n", r.MostExpensive.Address)
		fmt.Fprintf(w, "  Price   : \033[1;31m%s\033[0m\n", r.MostExpensive.PriceString())
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "\033[1;33m  Buyers by Priority\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	for _, p := range []models.Priority{models.PriorityHigh, models.PriorityNormal, models.PriorityLow} {
		fmt.Fprintf(w, "  %-8s %d\n", p, r.BuyersByPriority[p])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "\033[1;33m  Properties by Location\033[0m\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.PropertiesByLocation) == 0 {
		fmt.Fprintf(w, "  No location data\n")
	} else {
		type locCount struct {
			loc   string
			count int
		}
		var locs []locCount
		for loc, cnt := range r.PropertiesByLocation {
			locs = append(locs, locCount{loc, cnt})
		}
		sort.Slice(locs, func(i, j int) bool {
			if locs[i].count != locs[j].count {
				return locs[i].count > locs[j].count
			}
			return locs[i].loc < locs[j].loc
		})
		for _, lc := range locs {
			bar := strings.Repeat("█", lc.count)
			fmt.Fprintf(w, "  %-30s %s (%d)\n", truncate(lc.loc, 28), bar, lc.count)
		}
	}

	fmt.Fprintf(w, "\n\033[1;35m%s\033[0m\n\n", sep)
}

// locationOf takes the last comma-separated part of an address as its
// area, e.g. "12 Marina Rd, Downtown" → "Downtown". Addresses without a
// comma are their own location.
func locationOf(address string) string {
	parts := strings.Split(address, ",")
	return strings.TrimSpace(parts[len(parts)-1])
}

func round2(f float64) float64 {
	return float64(int(f*100+0.5)) / 100
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
