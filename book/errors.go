package book

import "errors"

// Sentinel errors surfaced by books, views and the model manager. Callers
// match them with errors.Is; every returned error wraps one of these with
// the operation and identity key involved.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDuplicateRecord = errors.New("duplicate record")
	ErrRecordNotFound  = errors.New("record not found")
)
