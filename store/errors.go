package store

import "errors"

// ErrNotFound is returned when a customer row doesn't exist.
var ErrNotFound = errors.New("store: customer not found")
