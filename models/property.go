package models

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// Property is a home listed with the agent.
type Property struct {
	Name            string          `json:"name"`
	Address         string          `json:"address"`
	Price           float64         `json:"price"`
	Characteristics Characteristics `json:"characteristics,omitempty"`
	OwnerName       string          `json:"owner_name"`
	OwnerPhone      string          `json:"owner_phone"`
	CreatedAt       time.Time       `json:"created_at"`
}

// IdentityKey identifies a property by name and address.
func (p *Property) IdentityKey() string {
	return normaliseSpace(p.Name) + "|" + normaliseSpace(p.Address)
}

// Equal reports whether every field of p and o matches.
func (p *Property) Equal(o *Property) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.Name == o.Name &&
		p.Address == o.Address &&
		p.Price == o.Price &&
		slices.Equal(p.Characteristics, o.Characteristics) &&
		p.OwnerName == o.OwnerName &&
		p.OwnerPhone == o.OwnerPhone &&
		p.CreatedAt.Equal(o.CreatedAt)
}

// Validate checks the fields a command needs before the property is stored.
func (p *Property) Validate() error {
	if normaliseSpace(p.Name) == "" {
		return errors.New("property: name is required")
	}
	if normaliseSpace(p.Address) == "" {
		return errors.New("property: address is required")
	}
	if p.Price < 0 {
		return fmt.Errorf("property: price %.2f must not be negative", p.Price)
	}
	if p.OwnerPhone != "" && !validPhone(p.OwnerPhone) {
		return fmt.Errorf("property: owner phone %q must be at least 3 digits", p.OwnerPhone)
	}
	return nil
}

// PriceString renders the asking price.
func (p *Property) PriceString() string {
	return formatMoney(p.Price)
}

func (p *Property) String() string {
	return fmt.Sprintf("%s; Address: %s; Price: %s; Owner: %s",
		p.Name, p.Address, p.PriceString(), p.OwnerName)
}
