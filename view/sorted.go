package view

import (
	"fmt"
	"slices"

	"propbook/book"
)

// Sorted holds every record of a book ordered by the current comparator.
// Ties keep their order in the book. Without a comparator the view follows
// insertion order. Sorting never reorders the book itself.
type Sorted[T book.Record[T]] struct {
	projection[T]
	comparator Comparator[T]
}

// NewSorted returns a view over src in insertion order.
func NewSorted[T book.Record[T]](src *book.Book[T]) *Sorted[T] {
	s := &Sorted[T]{}
	s.src = src
	s.unsubscribe = src.Subscribe(func(book.Change) { s.refresh() })
	s.refresh()
	return s
}

// SetComparator replaces the comparator and reorders the view.
func (s *Sorted[T]) SetComparator(c Comparator[T]) error {
	if c == nil {
		return fmt.Errorf("view: set comparator: nil comparator: %w", book.ErrInvalidArgument)
	}
	s.comparator = c
	s.refresh()
	return nil
}

func (s *Sorted[T]) refresh() {
	items := s.src.Items()
	if s.comparator != nil {
		slices.SortStableFunc(items, s.comparator)
	}
	s.publish(items)
}
