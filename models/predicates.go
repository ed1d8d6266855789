package models

import (
	"cmp"
	"strings"
)

// ShowAllBuyers accepts every buyer.
func ShowAllBuyers(*Buyer) bool { return true }

// ShowAllProperties accepts every property.
func ShowAllProperties(*Property) bool { return true }

// BuyerNameContainsKeywords matches buyers whose name contains any of the
// keywords as a whole word, ignoring case.
func BuyerNameContainsKeywords(keywords []string) func(*Buyer) bool {
	return func(b *Buyer) bool {
		return containsWord(b.Name, keywords)
	}
}

// BuyerWantsCharacteristic matches buyers who listed tag as desired.
func BuyerWantsCharacteristic(tag string) func(*Buyer) bool {
	return func(b *Buyer) bool {
		return b.DesiredCharacteristics.Has(tag)
	}
}

// PropertyNameContainsKeywords matches properties whose name contains any of
// the keywords as a whole word, ignoring case.
func PropertyNameContainsKeywords(keywords []string) func(*Property) bool {
	return func(p *Property) bool {
		return containsWord(p.Name, keywords)
	}
}

// PropertyPriceWithin matches properties priced inside r.
func PropertyPriceWithin(r PriceRange) func(*Property) bool {
	return func(p *Property) bool {
		return r.Contains(p.Price)
	}
}

// PropertyHasCharacteristics matches properties carrying every tag.
func PropertyHasCharacteristics(tags []string) func(*Property) bool {
	return func(p *Property) bool {
		for _, t := range tags {
			if !p.Characteristics.Has(t) {
				return false
			}
		}
		return true
	}
}

// BuyersByName orders buyers alphabetically, ignoring case.
func BuyersByName(a, b *Buyer) int {
	return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// BuyersByPriority puts the most urgent buyers first.
func BuyersByPriority(a, b *Buyer) int {
	return cmp.Compare(b.Priority.Rank(), a.Priority.Rank())
}

// BuyersByCreated orders buyers oldest first.
func BuyersByCreated(a, b *Buyer) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}

// PropertiesByName orders properties alphabetically, ignoring case.
func PropertiesByName(a, b *Property) int {
	return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
}

// PropertiesByPrice orders properties cheapest first.
func PropertiesByPrice(a, b *Property) int {
	return cmp.Compare(a.Price, b.Price)
}

// PropertiesByCreated orders properties oldest first.
func PropertiesByCreated(a, b *Property) int {
	return a.CreatedAt.Compare(b.CreatedAt)
}

// Reverse inverts a comparator.
func Reverse[T any](c func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return c(b, a) }
}

func containsWord(sentence string, keywords []string) bool {
	words := strings.Fields(strings.ToLower(sentence))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k == "" {
			continue
		}
		for _, w := range words {
			if w == k {
				return true
			}
		}
	}
	return false
}
