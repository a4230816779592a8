package service

import (
    "context"
    "log/slog"
    "strings"
    "unicode/utf8"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/queue"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

// ClientRegistry is the part of the client registry the engine relies on.
type ClientRegistry interface {
    Exists(ctx context.Context, id int64) (bool, error)
}

// RoomRegistry is the part of the room registry the engine relies on.
// List feeds the availability table.
type RoomRegistry interface {
    Exists(ctx context.Context, id int64) (bool, error)
    List(ctx context.Context) ([]model.Room, error)
}

// EventPublisher receives lifecycle events after they have been committed.
type EventPublisher interface {
    Publish(ctx context.Context, ev queue.ReservationEvent) error
}

// ReservationService is the reservation engine: availability checks,
// the create/rename/cancel lifecycle and the date queries used to pick a
// folio for editing.  All state lives in the injected repositories; the
// service itself keeps none between calls.
type ReservationService struct {
    clients      ClientRegistry
    rooms        RoomRegistry
    reservations *repository.ReservationRepo
    clock        Clock
    policy       Policy
    events       EventPublisher
    log          *slog.Logger
    minName      int
}

// Option customises a ReservationService.
type Option func(*ReservationService)

// WithClock replaces the wall clock.
func WithClock(c Clock) Option { return func(s *ReservationService) { s.clock = c } }

// WithPolicy replaces DefaultPolicy.
func WithPolicy(p Policy) Option { return func(s *ReservationService) { s.policy = p } }

// WithPublisher sends lifecycle events to p.
func WithPublisher(p EventPublisher) Option { return func(s *ReservationService) { s.events = p } }

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option { return func(s *ReservationService) { s.log = l } }

// WithMinEventNameLen raises the shortest accepted event name to n
// characters.  Values below 1 are ignored.
func WithMinEventNameLen(n int) Option {
    return func(s *ReservationService) {
        if n > 1 {
            s.minName = n
        }
    }
}

// NewReservationService wires the engine.  All three dependencies must be
// non-nil.
func NewReservationService(clients ClientRegistry, rooms RoomRegistry, reservations *repository.ReservationRepo, opts ...Option) *ReservationService {
    if clients == nil || rooms == nil || reservations == nil {
        panic("nil dependency passed to NewReservationService")
    }
    s := &ReservationService{
        clients:      clients,
        rooms:        rooms,
        reservations: reservations,
        clock:        SystemClock{},
        policy:       DefaultPolicy(),
        events:       NopPublisher{},
        log:          slog.Default(),
        minName:      1,
    }
    for _, opt := range opts {
        opt(s)
    }
    return s
}

// Policy returns the booking rules in force.
func (s *ReservationService) Policy() Policy { return s.policy }

// EarliestDate is the first date a reservation may be created for,
// ignoring blackout days.
func (s *ReservationService) EarliestDate() model.Date { return s.policy.EarliestDate(s.clock) }

// eventName trims raw and checks it against the configured bounds.
func (s *ReservationService) eventName(raw string) (string, error) {
    name := strings.TrimSpace(raw)
    if name == "" {
        return "", repository.ErrEmptyEventName
    }
    if n := utf8.RuneCountInString(name); n < s.minName || n > model.MaxEventNameLen {
        return "", repository.Detail(repository.ErrEventNameLen,
            "must be %d to %d characters, got %d", s.minName, model.MaxEventNameLen, n)
    }
    return name, nil
}

// publish sends ev and only logs failures: the reservation is already
// committed and the broker is not part of the unit of work.
func (s *ReservationService) publish(ctx context.Context, ev queue.ReservationEvent) {
    ev.OccurredAt = s.clock.Now().UTC().Format("2006-01-02T15:04:05Z07:00")
    if err := s.events.Publish(ctx, ev); err != nil {
        s.log.Warn("publish reservation event failed", "type", ev.Type, "folio", ev.Folio, "err", err)
    }
}
