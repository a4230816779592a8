// Package repository holds data access for clients, rooms and
// reservations, together with the error taxonomy shared by every layer
// above it.  Four kind sentinels classify failures:
//
//   ErrValidation – bad input (empty name, unknown id, date rules); fix and retry.
//   ErrConflict   – the slot is taken or the operation has nothing to do.
//   ErrNotFound   – unknown folio, client or room on a lookup.
//   ErrStorage    – the database failed; the operation was rolled back.
//
// Specific errors wrap exactly one kind, so handlers branch with
// errors.Is(err, repository.ErrConflict) while tests can still match the
// precise cause, e.g. errors.Is(err, repository.ErrLeadTime).
package repository

import (
    "errors"
    "fmt"
)

var (
    ErrValidation = errors.New("validation error")
    ErrConflict   = errors.New("conflict")
    ErrNotFound   = errors.New("not found")
    ErrStorage    = errors.New("storage error")
)

// kindError is a named failure that unwraps to its kind sentinel.
type kindError struct {
    kind error
    msg  string
}

func (e *kindError) Error() string { return e.msg }
func (e *kindError) Unwrap() error { return e.kind }

func validation(msg string) error { return &kindError{kind: ErrValidation, msg: msg} }
func conflict(msg string) error   { return &kindError{kind: ErrConflict, msg: msg} }
func notFound(msg string) error   { return &kindError{kind: ErrNotFound, msg: msg} }

// Validation failures.
var (
    ErrUnknownClient  = validation("client does not exist")
    ErrUnknownRoom    = validation("room does not exist")
    ErrLeadTime       = validation("reservation date is inside the minimum lead time")
    ErrBlackoutDay    = validation("reservations are not accepted on this day")
    ErrInvalidShift   = validation("shift must be MORNING, AFTERNOON or NIGHT")
    ErrEmptyEventName = validation("event name must not be empty")
    ErrEventNameLen   = validation("event name length is out of range")
    ErrInvalidRange   = validation("start date is after end date")
    ErrInvalidDate    = validation("invalid date")
    ErrInvalidClient  = validation("invalid client")
    ErrInvalidRoom    = validation("invalid room")
)

// Conflicts.
var (
    ErrSlotTaken        = conflict("room is already reserved for that date and shift")
    ErrAlreadyCancelled = conflict("reservation is already cancelled")
)

// Lookups.
var (
    ErrReservationNotFound = notFound("reservation not found")
    ErrClientNotFound      = notFound("client not found")
    ErrRoomNotFound        = notFound("room not found")
)

// Detail attaches context to a named failure while keeping errors.Is
// working for both the failure and its kind.
func Detail(err error, format string, args ...any) error {
    return fmt.Errorf("%w: %s", err, fmt.Sprintf(format, args...))
}

// storageErr wraps a driver error so callers see ErrStorage.  The driver
// error stays reachable through errors.As for logging.
func storageErr(op string, err error) error {
    if err == nil {
        return nil
    }
    return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
}

// Storage is the exported form of storageErr for layers that run their
// own transactions (BeginTx/Commit) on a repository's handle.
func Storage(op string, err error) error { return storageErr(op, err) }
