package repository

import "errors"

// ErrNotFound is returned when a query for a single record matches
// nothing. Callers distinguish it from backend failures with errors.Is.
var ErrNotFound = errors.New("record not found")
