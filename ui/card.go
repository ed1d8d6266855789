package ui

import (
	"fmt"
	"strings"

	"propbook/models"
)

const notSpecified = "Not Specified"

// BuyerCard renders one buyer as it appears at 1-based position index of
// the displayed list.
func BuyerCard(t Theme, b *models.Buyer, index int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", t.Index.Render(fmt.Sprintf("%d.", index)), t.Title.Render(b.Name))
	line(&sb, t, "Phone", b.Phone)
	line(&sb, t, "Email", orNotSpecified(b.Email))
	line(&sb, t, "Address", orNotSpecified(b.Address))
	line(&sb, t, "Priority", b.Priority.String())

	budget := notSpecified
	if b.PriceRange != nil {
		budget = b.PriceRange.String()
	}
	line(&sb, t, "Budget", budget)
	line(&sb, t, "Desired Characteristics", tags(t, b.DesiredCharacteristics))
	return strings.TrimRight(sb.String(), "\n")
}

// PropertyCard renders one property as it appears at 1-based position
// index of the displayed list.
func PropertyCard(t Theme, p *models.Property, index int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", t.Index.Render(fmt.Sprintf("%d.", index)), t.Title.Render(p.Name))
	line(&sb, t, "Address", p.Address)
	line(&sb, t, "Price", p.PriceString())
	line(&sb, t, "Characteristics", tags(t, p.Characteristics))

	owner := notSpecified
	if p.OwnerName != "" || p.OwnerPhone != "" {
		owner = strings.TrimSpace(p.OwnerName + " " + p.OwnerPhone)
	}
	line(&sb, t, "Owner", owner)
	return strings.TrimRight(sb.String(), "\n")
}

func line(sb *strings.Builder, t Theme, label, value string) {
	sb.WriteString(t.Label.Render(label+":") + " " + value + "\n")
}

func tags(t Theme, c models.Characteristics) string {
	if len(c) == 0 {
		return notSpecified
	}
	rendered := make([]string, len(c))
	for i, tag := range c {
		rendered[i] = t.Tag.Render(tag)
	}
	return strings.Join(rendered, ", ")
}

func orNotSpecified(s string) string {
	if strings.TrimSpace(s) == "" {
		return notSpecified
	}
	return s
}
