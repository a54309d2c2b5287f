// Package repository contains the data access layer, separated from
// HTTP handlers. This file defines sentinel errors shared across the
// repositories so handlers can translate failure scenarios into
// distinct HTTP responses with errors.Is.
package repository

import "errors"

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrConflict is returned when a booking request cannot be admitted
// because the requested units are not available for every night of
// the stay. It is distinct from validation failures: the caller may
// retry with different dates or a smaller unit count. Handlers
// translate it into 409.
var ErrConflict = errors.New("not enough units available for the requested dates")

// ErrInvalidTransition is returned when a status change violates the
// booking state machine, including attempts to leave a terminal
// state. Handlers translate it into 409 with a distinct message.
var ErrInvalidTransition = errors.New("invalid booking status transition")

// ErrHotelNotFound is returned when a hotel id does not resolve to an
// existing row.
var ErrHotelNotFound = errors.New("hotel not found")

// ErrRoomNotFound is returned when a room id does not resolve to an
// existing row.
var ErrRoomNotFound = errors.New("room not found")

// ErrBookingNotFound is returned when a booking id does not resolve
// to an existing row.
var ErrBookingNotFound = errors.New("booking not found")

// ErrRoomNotBookable is returned when a booking targets a room that
// is inactive, or whose hotel is inactive or not yet approved.
var ErrRoomNotBookable = errors.New("room is not open for booking")
