// Package repository defines the storage boundary for bookings and the
// error values shared by its implementations.  Handlers distinguish
// failure scenarios with errors.Is: ErrBookingNotFound maps to 404 and
// ErrConflict to 409.  Conflicts detected by a ConflictCheck travel back
// unchanged so callers can inspect them with errors.As.
package repository

import "errors"

// ErrBookingNotFound is returned when no booking has the requested id.
var ErrBookingNotFound = errors.New("booking not found")

// ErrConflict is returned when the database itself rejects a write
// because of conflicting state, such as a duplicate primary key.
var ErrConflict = errors.New("conflict")
