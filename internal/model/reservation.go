package model

import "time"

// Reservation records a client's booking of one room for one shift on one
// calendar date.  Reservations are never deleted: cancelling flips the
// Cancelled flag and frees the slot for new bookings while the row stays
// available for history and export.
//
// Fields:
//  Folio     – primary key, assigned by storage, monotonic, never reused.
//  ClientID  – client who made the booking.
//  RoomID    – room being booked.
//  Date      – booked calendar date.
//  Shift     – booked shift within the date.
//  EventName – free text describing the event; never blank.
//  Cancelled – true once the reservation has been cancelled.
//  CreatedAt – creation timestamp.
//  UpdatedAt – last update timestamp.
type Reservation struct {
    Folio     int64     `json:"folio"`      // reservations.folio
    ClientID  int64     `json:"client_id"`  // reservations.client_id
    RoomID    int64     `json:"room_id"`    // reservations.room_id
    Date      Date      `json:"date"`       // reservations.reserved_on
    Shift     Shift     `json:"shift"`      // reservations.shift
    EventName string    `json:"event_name"` // reservations.event_name
    Cancelled bool      `json:"cancelled"`  // reservations.cancelled (nullable, NULL reads as false)
    CreatedAt time.Time `json:"created_at"` // reservations.created_at
    UpdatedAt time.Time `json:"updated_at"` // reservations.updated_at
}

// MaxEventNameLen is the longest event name, in characters, that storage
// accepts (reservations.event_name is VARCHAR(200)).
const MaxEventNameLen = 200

// Slot is the unit of contention: at most one active reservation may
// hold a given (date, room, shift) triple.
type Slot struct {
    Date   Date  `json:"date"`
    RoomID int64 `json:"room_id"`
    Shift  Shift `json:"shift"`
}
