// Package book holds the ordered, unique record collections behind the
// buyer and property lists, and the change notifications views build on.
package book

import (
	"fmt"
	"reflect"
	"slices"
)

// Record is anything a Book can hold. Two records with the same identity key
// are the same record even when their other fields differ.
type Record[T any] interface {
	IdentityKey() string
	Equal(other T) bool
}

// ChangeKind names the mutation that produced a Change.
type ChangeKind string

const (
	ChangeAdd     ChangeKind = "add"
	ChangeRemove  ChangeKind = "remove"
	ChangeReplace ChangeKind = "replace"
	ChangeReset   ChangeKind = "reset"
)

// Change is delivered to subscribers after every successful mutation.
type Change struct {
	Kind  ChangeKind
	Index int
}

// Book is an ordered sequence of records with unique identity keys.
// Insertion order is kept. A Book is not safe for concurrent use; all
// access happens on the thread that owns the model.
type Book[T Record[T]] struct {
	items   []T
	changes Subject[Change]
}

// New returns an empty Book.
func New[T Record[T]]() *Book[T] {
	return &Book[T]{}
}

// From returns a Book holding items, or ErrDuplicateRecord when two of them
// share an identity key.
func From[T Record[T]](items []T) (*Book[T], error) {
	b := New[T]()
	if err := b.ResetData(items); err != nil {
		return nil, err
	}
	return b, nil
}

// Contains reports whether a record with r's identity key is present.
func (b *Book[T]) Contains(r T) bool {
	if IsNil(r) {
		return false
	}
	return b.indexOf(r.IdentityKey()) >= 0
}

// Add appends r. It fails with ErrDuplicateRecord when r is already present.
func (b *Book[T]) Add(r T) error {
	if IsNil(r) {
		return fmt.Errorf("book: add: nil record: %w", ErrInvalidArgument)
	}
	if b.Contains(r) {
		return fmt.Errorf("book: add %q: %w", r.IdentityKey(), ErrDuplicateRecord)
	}
	b.items = append(b.items, r)
	b.changes.Notify(Change{Kind: ChangeAdd, Index: len(b.items) - 1})
	return nil
}

// Remove deletes the record with r's identity key. It fails with
// ErrRecordNotFound when there is none.
func (b *Book[T]) Remove(r T) error {
	if IsNil(r) {
		return fmt.Errorf("book: remove: nil record: %w", ErrInvalidArgument)
	}
	i := b.indexOf(r.IdentityKey())
	if i < 0 {
		return fmt.Errorf("book: remove %q: %w", r.IdentityKey(), ErrRecordNotFound)
	}
	b.items = slices.Delete(b.items, i, i+1)
	b.changes.Notify(Change{Kind: ChangeRemove, Index: i})
	return nil
}

// Replace substitutes replacement for target in target's position.
// It fails with ErrRecordNotFound when target is absent and with
// ErrDuplicateRecord when replacement collides with a different record.
func (b *Book[T]) Replace(target, replacement T) error {
	if IsNil(target) || IsNil(replacement) {
		return fmt.Errorf("book: replace: nil record: %w", ErrInvalidArgument)
	}
	i := b.indexOf(target.IdentityKey())
	if i < 0 {
		return fmt.Errorf("book: replace %q: %w", target.IdentityKey(), ErrRecordNotFound)
	}
	if j := b.indexOf(replacement.IdentityKey()); j >= 0 && j != i {
		return fmt.Errorf("book: replace %q with %q: %w",
			target.IdentityKey(), replacement.IdentityKey(), ErrDuplicateRecord)
	}
	b.items[i] = replacement
	b.changes.Notify(Change{Kind: ChangeReplace, Index: i})
	return nil
}

// ResetData replaces the whole contents with items. Nothing changes when
// items holds a nil record or a key collision.
func (b *Book[T]) ResetData(items []T) error {
	seen := make(map[string]struct{}, len(items))
	for _, r := range items {
		if IsNil(r) {
			return fmt.Errorf("book: reset: nil record: %w", ErrInvalidArgument)
		}
		key := r.IdentityKey()
		if _, dup := seen[key]; dup {
			return fmt.Errorf("book: reset %q: %w", key, ErrDuplicateRecord)
		}
		seen[key] = struct{}{}
	}
	b.items = slices.Clone(items)
	b.changes.Notify(Change{Kind: ChangeReset, Index: -1})
	return nil
}

// Len returns the number of records.
func (b *Book[T]) Len() int {
	return len(b.items)
}

// At returns the record at index i in insertion order.
func (b *Book[T]) At(i int) T {
	return b.items[i]
}

// Items returns a copy of the records in insertion order.
func (b *Book[T]) Items() []T {
	return slices.Clone(b.items)
}

// Subscribe registers fn to run after every successful mutation.
func (b *Book[T]) Subscribe(fn func(Change)) (unsubscribe func()) {
	return b.changes.Subscribe(fn)
}

// Equal reports whether both books hold equal records in the same order.
func (b *Book[T]) Equal(o *Book[T]) bool {
	if b == nil || o == nil {
		return b == o
	}
	return slices.EqualFunc(b.items, o.items, func(x, y T) bool { return x.Equal(y) })
}

func (b *Book[T]) indexOf(key string) int {
	return slices.IndexFunc(b.items, func(r T) bool { return r.IdentityKey() == key })
}

// IsNil reports whether r is a nil interface or a typed nil pointer, either
// of which would panic inside IdentityKey.
func IsNil[T any](r T) bool {
	v := reflect.ValueOf(any(r))
	if !v.IsValid() {
		return true
	}
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func:
		return v.IsNil()
	}
	return false
}
