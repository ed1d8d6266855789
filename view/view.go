// Package view derives live filtered and sorted projections from a book.
// Projections recompute synchronously when their book changes, so anything
// bound to a view sees the new contents before the mutating call returns.
package view

import (
	"slices"

	"propbook/book"
)

// Predicate selects records for a filtered view.
type Predicate[T any] func(T) bool

// Comparator orders records for a sorted view; negative means a sorts first.
type Comparator[T any] func(a, b T) int

// List is a read-only, live sequence of records. Consumers must not mutate
// what Items returns back into the model.
type List[T any] interface {
	Len() int
	At(i int) T
	Items() []T
	Subscribe(fn func()) (unsubscribe func())
}

// projection is the state shared by Filtered and Sorted.
type projection[T book.Record[T]] struct {
	src         *book.Book[T]
	items       []T
	changed     book.Subject[struct{}]
	unsubscribe func()
}

func (p *projection[T]) Len() int {
	return len(p.items)
}

func (p *projection[T]) At(i int) T {
	return p.items[i]
}

func (p *projection[T]) Items() []T {
	return slices.Clone(p.items)
}

// Subscribe registers fn to run after every recompute.
func (p *projection[T]) Subscribe(fn func()) (unsubscribe func()) {
	return p.changed.Subscribe(func(struct{}) { fn() })
}

// Close detaches the view from its book. A closed view keeps its last
// contents and stops updating.
func (p *projection[T]) Close() {
	if p.unsubscribe != nil {
		p.unsubscribe()
		p.unsubscribe = nil
	}
}

func (p *projection[T]) publish(items []T) {
	p.items = items
	p.changed.Notify(struct{}{})
}

func equalItems[T book.Record[T]](a, b []T) bool {
	return slices.EqualFunc(a, b, func(x, y T) bool { return x.Equal(y) })
}
