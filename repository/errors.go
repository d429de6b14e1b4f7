// Package repository defines the store adapter contracts and the sentinel
// errors shared by every implementation. Handlers match these with
// errors.Is to pick the HTTP status, so repositories must return them
// unwrapped or wrapped with %w.
package repository

import "errors"

// ErrNotFound is returned when the requested record does not exist.
// Handlers translate it into a 404.
var ErrNotFound = errors.New("not found")
