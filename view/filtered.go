package view

import (
	"fmt"

	"propbook/book"
)

// Filtered holds the records of a book that satisfy the current predicate,
// in the book's order.
type Filtered[T book.Record[T]] struct {
	projection[T]
	predicate Predicate[T]
}

// NewFiltered returns a view over src that accepts every record.
func NewFiltered[T book.Record[T]](src *book.Book[T]) *Filtered[T] {
	f := &Filtered[T]{}
	f.src = src
	f.unsubscribe = src.Subscribe(func(book.Change) { f.refresh() })
	f.refresh()
	return f
}

// SetPredicate replaces the predicate and recomputes the view.
func (f *Filtered[T]) SetPredicate(p Predicate[T]) error {
	if p == nil {
		return fmt.Errorf("view: set predicate: nil predicate: %w", book.ErrInvalidArgument)
	}
	f.predicate = p
	f.refresh()
	return nil
}

// IsFiltered reports whether the predicate hides at least one record.
func (f *Filtered[T]) IsFiltered() bool {
	return f.Len() < f.src.Len()
}

func (f *Filtered[T]) refresh() {
	all := f.src.Items()
	if f.predicate == nil {
		f.publish(all)
		return
	}
	kept := all[:0]
	for _, r := range all {
		if f.predicate(r) {
			kept = append(kept, r)
		}
	}
	f.publish(kept)
}
