package services

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"propbook/models"
	"propbook/utils"
)

var (
	// priceRegexp captures a numeric amount with an optional k/m multiplier
	priceRegexp = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*([km]\b|mil|million)?`)

	// featureWords are the description phrases promoted to characteristics
	featureWords = []string{
		"pool", "garden", "gym", "parking", "balcony", "sea view",
		"near mrt", "furnished", "pet friendly", "rooftop",
	}
)

// Cleaner transforms imported RawListings into Properties ready for the
// property book.
type Cleaner struct {
	logger *utils.Logger
	now    func() time.Time
}

// NewCleaner creates a Cleaner with the given logger.
func NewCleaner(logger *utils.Logger) *Cleaner {
	return &Cleaner{logger: logger, now: time.Now}
}

// Clean normalises raw listings and drops those without a name or address,
// or whose identity key was already produced.
func (c *Cleaner) Clean(raw []*models.RawListing) []*models.Property {
	seen := utils.NewKeySet()
	result := make([]*models.Property, 0, len(raw))

	for _, r := range raw {
		name := normaliseText(r.Title)
		address := normaliseText(r.Location)
		if isMissing(name) || isMissing(address) {
			c.logger.Warn("[cleaner] Dropping listing without name or address: %s", r.URL)
			continue
		}

		p := &models.Property{
			Name:            name,
			Address:         address,
			Price:           c.parsePrice(r.RawPrice),
			Characteristics: extractCharacteristics(r.Description),
			CreatedAt:       c.now(),
		}

		if !seen.Add(p.IdentityKey()) {
			c.logger.Debug("[cleaner] Duplicate listing skipped: %s", p.IdentityKey())
			continue
		}

		result = append(result, p)
	}

	c.logger.Info("[cleaner] Cleaned %d → %d listings (dropped %d)",
		len(raw), len(result), len(raw)-len(result))
	return result
}

// parsePrice extracts an asking price.
// Examples:
//
//	"$850,000"          → 850000
//	"S$ 1.25m"          → 1250000
//	"From $980k (neg.)" → 980000
func (c *Cleaner) parsePrice(raw string) float64 {
	cleaned := strings.ReplaceAll(strings.ToLower(raw), ",", "")
	match := priceRegexp.FindStringSubmatch(cleaned)
	if match == nil {
		return 0
	}

	amount, err := strconv.ParseFloat(match[1], 64)
	if err != nil {
		return 0
	}

	switch match[2] {
	case "k":
		amount *= 1_000
	case "m", "mil", "million":
		amount *= 1_000_000
	}

	c.logger.Debug("[cleaner] Parsed price %q as %.2f", raw, amount)
	return amount
}

// extractCharacteristics picks known feature phrases out of a description.
func extractCharacteristics(description string) models.Characteristics {
	text := " " + normaliseText(strings.ToLower(description)) + " "
	var out models.Characteristics
	for _, w := range featureWords {
		if strings.Contains(text, " "+w+" ") || strings.Contains(text, " "+w+",") || strings.Contains(text, " "+w+".") {
			out = append(out, w)
		}
	}
	return out
}

// normaliseText strips leading/trailing whitespace and collapses internal whitespace.
func normaliseText(s string) string {
	s = strings.TrimSpace(s)
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r)
	})
	return strings.Join(fields, " ")
}

func isMissing(s string) bool {
	return s == "" || strings.EqualFold(s, "n/a")
}
