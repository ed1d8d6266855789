package view

import (
	"fmt"

	"propbook/book"
)

// State pairs the filtered and sorted views of one book and remembers which
// of the two is on screen. The filter narrows membership and the sort
// reorders the full book; the two never compose.
type State[T book.Record[T]] struct {
	filtered        *Filtered[T]
	sorted          *Sorted[T]
	lastShownSorted bool
	display         book.Subject[List[T]]
}

// NewState builds both views over src. The initial display is the
// filtered view with an accept-all predicate.
func NewState[T book.Record[T]](src *book.Book[T]) *State[T] {
	return &State[T]{
		filtered: NewFiltered(src),
		sorted:   NewSorted(src),
	}
}

// Filtered returns the filtered view.
func (s *State[T]) Filtered() *Filtered[T] {
	return s.filtered
}

// Sorted returns the sorted view.
func (s *State[T]) Sorted() *Sorted[T] {
	return s.sorted
}

// SetFilterPredicate recomputes the filtered view. It does not change which
// view is displayed.
func (s *State[T]) SetFilterPredicate(p Predicate[T]) error {
	return s.filtered.SetPredicate(p)
}

// SetSortComparator reorders the sorted view, makes it the displayed view
// and tells display subscribers to switch to it.
func (s *State[T]) SetSortComparator(c Comparator[T]) error {
	if err := s.sorted.SetComparator(c); err != nil {
		return err
	}
	s.lastShownSorted = true
	s.display.Notify(s.sorted)
	return nil
}

// ShowFiltered makes the filtered view the displayed one again. Nothing
// calls this implicitly; commands that list or search use it.
func (s *State[T]) ShowFiltered() {
	s.lastShownSorted = false
	s.display.Notify(s.filtered)
}

// IsSorted reports whether the sorted view is displayed.
func (s *State[T]) IsSorted() bool {
	return s.lastShownSorted
}

// CurrentDisplay returns the view on screen.
func (s *State[T]) CurrentDisplay() List[T] {
	if s.lastShownSorted {
		return s.sorted
	}
	return s.filtered
}

// OnDisplayChange registers fn to receive the view a display should switch
// to. Panels subscribe here rather than the state holding a panel.
func (s *State[T]) OnDisplayChange(fn func(List[T])) (unsubscribe func()) {
	return s.display.Subscribe(fn)
}

// DisplayedAt resolves a 1-based index on the displayed view.
func (s *State[T]) DisplayedAt(index int) (T, error) {
	list := s.CurrentDisplay()
	if index < 1 || index > list.Len() {
		var zero T
		return zero, fmt.Errorf("view: index %d outside displayed list of %d: %w",
			index, list.Len(), book.ErrInvalidArgument)
	}
	return list.At(index - 1), nil
}

// Equal compares view contents and the display flag. Predicates and
// comparators are functions and cannot be compared directly, so the views
// they produce stand in for them.
func (s *State[T]) Equal(o *State[T]) bool {
	if s == nil || o == nil {
		return s == o
	}
	return s.lastShownSorted == o.lastShownSorted &&
		equalItems(s.filtered.items, o.filtered.items) &&
		equalItems(s.sorted.items, o.sorted.items)
}

// Close detaches both views from the book.
func (s *State[T]) Close() {
	s.filtered.Close()
	s.sorted.Close()
}
