// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationsQueue is the durable queue reservation lifecycle events are
// published to.
const ReservationsQueue = "reservations.events"

// Event types carried in ReservationEvent.Type.
const (
    EventReservationCreated   = "reservation.created"
    EventReservationRenamed   = "reservation.renamed"
    EventReservationCancelled = "reservation.cancelled"
)

// ReservationEvent is published after a lifecycle change has been
// committed.  It carries enough information for downstream consumers to
// keep an audit trail without querying the primary database.
type ReservationEvent struct {
    Type       string `json:"type"`
    Folio      int64  `json:"folio"`
    ClientID   int64  `json:"client_id"`
    RoomID     int64  `json:"room_id"`
    Date       string `json:"date"`
    Shift      string `json:"shift"`
    EventName  string `json:"event_name"`
    OccurredAt string `json:"occurred_at"`
}
