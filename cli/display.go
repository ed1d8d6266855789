package cli

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"propbook/book"
	"propbook/models"
	"propbook/services"
	"propbook/ui"
	"propbook/view"
)

// displayFlags pick which view a command shows, and so which record a
// displayed index refers to.
type displayFlags struct {
	find string
	sort string
	desc bool
}

func (f *displayFlags) register(cmd *cobra.Command, sortKeys string) {
	cmd.Flags().StringVar(&f.find, "find", "", "show only records whose name contains one of these keywords")
	cmd.Flags().StringVar(&f.sort, "sort", "", "show the whole book sorted by "+sortKeys)
	cmd.Flags().BoolVar(&f.desc, "desc", false, "reverse the --sort order")
}

func (f *displayFlags) validate() error {
	if f.find != "" && f.sort != "" {
		return errors.New("--find and --sort cannot be combined: a sort always covers the whole book")
	}
	if f.desc && f.sort == "" {
		return errors.New("--desc needs --sort")
	}
	return nil
}

var buyerComparators = map[string]view.Comparator[*models.Buyer]{
	"name":     models.BuyersByName,
	"priority": models.BuyersByPriority,
	"created":  models.BuyersByCreated,
}

var propertyComparators = map[string]view.Comparator[*models.Property]{
	"name":    models.PropertiesByName,
	"price":   models.PropertiesByPrice,
	"created": models.PropertiesByCreated,
}

// showBuyers points the buyer display at the view the flags describe.
func showBuyers(mm *services.ModelManager, f displayFlags) error {
	if err := f.validate(); err != nil {
		return err
	}
	if f.sort != "" {
		c, ok := buyerComparators[f.sort]
		if !ok {
			return fmt.Errorf("unknown buyer sort %q (want name, priority or created)", f.sort)
		}
		if f.desc {
			c = models.Reverse(c)
		}
		return mm.UpdateSortedBuyerList(c)
	}
	if f.find != "" {
		if err := mm.UpdateFilteredBuyerList(models.BuyerNameContainsKeywords(strings.Fields(f.find))); err != nil {
			return err
		}
	}
	mm.ShowFilteredBuyers()
	return nil
}

// showProperties points the property display at the view the flags and
// the extra filter describe. extra narrows the find further; nil means none.
func showProperties(mm *services.ModelManager, f displayFlags, extra view.Predicate[*models.Property]) error {
	if err := f.validate(); err != nil {
		return err
	}
	if f.sort != "" {
		if extra != nil {
			return errors.New("property filters cannot be combined with --sort")
		}
		c, ok := propertyComparators[f.sort]
		if !ok {
			return fmt.Errorf("unknown property sort %q (want name, price or created)", f.sort)
		}
		if f.desc {
			c = models.Reverse(c)
		}
		return mm.UpdateSortedPropertyList(c)
	}

	var preds []view.Predicate[*models.Property]
	if f.find != "" {
		preds = append(preds, models.PropertyNameContainsKeywords(strings.Fields(f.find)))
	}
	if extra != nil {
		preds = append(preds, extra)
	}
	if len(preds) > 0 {
		if err := mm.UpdateFilteredPropertyList(allOf(preds)); err != nil {
			return err
		}
	}
	mm.ShowFilteredProperties()
	return nil
}

func allOf[T any](preds []view.Predicate[T]) view.Predicate[T] {
	return func(r T) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

func printBuyers(w io.Writer, list view.List[*models.Buyer]) {
	t := ui.DefaultTheme()
	for i := 0; i < list.Len(); i++ {
		fmt.Fprintln(w, ui.BuyerCard(t, list.At(i), i+1))
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d buyers listed!\n", list.Len())
}

func printProperties(w io.Writer, list view.List[*models.Property]) {
	t := ui.DefaultTheme()
	for i := 0; i < list.Len(); i++ {
		fmt.Fprintln(w, ui.PropertyCard(t, list.At(i), i+1))
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d properties listed!\n", list.Len())
}

// parseIndex reads a 1-based displayed index.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("index %q must be a positive number: %w", arg, book.ErrInvalidArgument)
	}
	return n, nil
}

// parseRange reads "min-max" into a PriceRange.
func parseRange(s string) (*models.PriceRange, error) {
	lo, hi, ok := strings.Cut(strings.ReplaceAll(s, " ", ""), "-")
	if !ok {
		return nil, fmt.Errorf("range %q must look like MIN-MAX", s)
	}
	min, err := strconv.ParseFloat(lo, 64)
	if err != nil {
		return nil, fmt.Errorf("range %q: bad lower bound: %w", s, err)
	}
	max, err := strconv.ParseFloat(hi, 64)
	if err != nil {
		return nil, fmt.Errorf("range %q: bad upper bound: %w", s, err)
	}
	r, err := models.NewPriceRange(min, max)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// explain turns model errors into messages a user can act on.
func explain(err error, kind string) error {
	switch {
	case errors.Is(err, book.ErrDuplicateRecord):
		return fmt.Errorf("this %s already exists in the %s book", kind, kind)
	case errors.Is(err, book.ErrRecordNotFound):
		return fmt.Errorf("the %s is no longer in the %s book", kind, kind)
	}
	return err
}
