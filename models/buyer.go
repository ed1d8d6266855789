package models

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"
)

// Priority ranks how actively an agent is working with a buyer.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityNormal Priority = "normal"
	PriorityHigh   Priority = "high"
)

// ParsePriority accepts a priority name in any case. Empty input yields
// PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return PriorityNormal, nil
	case string(PriorityLow):
		return PriorityLow, nil
	case string(PriorityNormal):
		return PriorityNormal, nil
	case string(PriorityHigh):
		return PriorityHigh, nil
	}
	return "", fmt.Errorf("unknown priority %q (want low, normal or high)", s)
}

// Rank orders priorities; higher is more urgent.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 2
	case PriorityNormal:
		return 1
	default:
		return 0
	}
}

func (p Priority) String() string {
	return strings.ToUpper(string(p))
}

// PriceRange is an inclusive budget.
type PriceRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// NewPriceRange validates and builds a PriceRange.
func NewPriceRange(min, max float64) (PriceRange, error) {
	if min < 0 || max < 0 {
		return PriceRange{}, errors.New("price range bounds must not be negative")
	}
	if min > max {
		return PriceRange{}, fmt.Errorf("price range lower bound %.2f exceeds upper bound %.2f", min, max)
	}
	return PriceRange{Min: min, Max: max}, nil
}

// Contains reports whether price falls inside the range.
func (r PriceRange) Contains(price float64) bool {
	return price >= r.Min && price <= r.Max
}

func (r PriceRange) String() string {
	return formatMoney(r.Min) + " - " + formatMoney(r.Max)
}

// Characteristics is a list of free-form tags such as "pool" or "near mrt".
type Characteristics []string

// ParseCharacteristics splits a ';' or ',' separated list, trimming blanks.
// It returns nil when no tag remains.
func ParseCharacteristics(s string) Characteristics {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ';' || r == ',' })
	var out Characteristics
	for _, f := range fields {
		f = normaliseSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether tag is present, ignoring case.
func (c Characteristics) Has(tag string) bool {
	for _, t := range c {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}

func (c Characteristics) String() string {
	return strings.Join(c, "; ")
}

// Buyer is a prospective purchaser tracked by the agent.
type Buyer struct {
	Name                   string          `json:"name"`
	Phone                  string          `json:"phone"`
	Email                  string          `json:"email"`
	Address                string          `json:"address"`
	Priority               Priority        `json:"priority"`
	PriceRange             *PriceRange     `json:"price_range,omitempty"`
	DesiredCharacteristics Characteristics `json:"desired_characteristics,omitempty"`
	CreatedAt              time.Time       `json:"created_at"`
}

// IdentityKey identifies a buyer by name and phone.
func (b *Buyer) IdentityKey() string {
	return normaliseSpace(b.Name) + "|" + strings.TrimSpace(b.Phone)
}

// Equal reports whether every field of b and o matches.
func (b *Buyer) Equal(o *Buyer) bool {
	if b == nil || o == nil {
		return b == o
	}
	return b.Name == o.Name &&
		b.Phone == o.Phone &&
		b.Email == o.Email &&
		b.Address == o.Address &&
		b.Priority == o.Priority &&
		equalRange(b.PriceRange, o.PriceRange) &&
		slices.Equal(b.DesiredCharacteristics, o.DesiredCharacteristics) &&
		b.CreatedAt.Equal(o.CreatedAt)
}

// Validate checks the fields a command needs before the buyer is stored.
func (b *Buyer) Validate() error {
	if normaliseSpace(b.Name) == "" {
		return errors.New("buyer: name is required")
	}
	if !validPhone(b.Phone) {
		return fmt.Errorf("buyer: phone %q must be at least 3 digits", b.Phone)
	}
	if b.Email != "" && !strings.Contains(b.Email, "@") {
		return fmt.Errorf("buyer: email %q is not valid", b.Email)
	}
	if _, err := ParsePriority(string(b.Priority)); err != nil {
		return fmt.Errorf("buyer: %w", err)
	}
	return nil
}

func (b *Buyer) String() string {
	return fmt.Sprintf("%s; Phone: %s; Email: %s; Address: %s; Priority: %s",
		b.Name, b.Phone, b.Email, b.Address, b.Priority)
}

func equalRange(a, b *PriceRange) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func validPhone(p string) bool {
	p = strings.TrimSpace(p)
	if len(p) < 3 {
		return false
	}
	for _, r := range p {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func normaliseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func formatMoney(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("$%d", int64(v))
	}
	return fmt.Sprintf("$%.2f", v)
}
