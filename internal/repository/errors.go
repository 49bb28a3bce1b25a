// Package repository persists the gateway's own records.  Everything else
// lives behind the backend REST API.
package repository

import "errors"

// ErrDuplicate is returned when a record with the same id already exists.
// The booking consumer treats it as an already-processed message.
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound is returned when a lookup matches no rows.
var ErrNotFound = errors.New("not found")
