package utils

import (
	"sync"
	"sync/atomic"
)

// KeySet is a set of strings safe for concurrent use. The importer records
// the listing URLs it has already turned into records in one.
type KeySet struct {
	keys sync.Map
	size atomic.Int64
}

func NewKeySet() *KeySet {
	return &KeySet{}
}

// Add reports whether key was new.
func (s *KeySet) Add(key string) bool {
	if _, loaded := s.keys.LoadOrStore(key, struct{}{}); loaded {
		return false
	}
	s.size.Add(1)
	return true
}

func (s *KeySet) Contains(key string) bool {
	_, ok := s.keys.Load(key)
	return ok
}

func (s *KeySet) Size() int {
	return int(s.size.Load())
}
