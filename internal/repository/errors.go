// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as
// handlers to distinguish between different failure scenarios, for
// example a delete that cannot proceed because dependent records
// still exist.
package repository

import "errors"

// ErrConflict is returned when an operation cannot be performed
// because of conflicting state, such as deleting a table that still
// has upcoming reservations or booking a table that is not available
// for the requested window. Handlers should translate this into an
// HTTP 409 response.
var ErrConflict = errors.New("conflict")
