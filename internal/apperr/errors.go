// Package apperr defines the sentinel errors shared between the service
// layer and the HTTP/MCP surfaces.
package apperr

import "errors"

var (
	// ErrNotFound signals a vault file or record that does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals an optimistic concurrency failure (stale checksum).
	ErrConflict = errors.New("conflict")
	// ErrAlreadyExists signals a create targeting an occupied path.
	ErrAlreadyExists = errors.New("already exists")
)
