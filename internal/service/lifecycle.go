package service

import (
    "context"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/queue"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

// CreateInput is a candidate reservation.
type CreateInput struct {
    ClientID  int64       `json:"client_id"`
    Date      model.Date  `json:"date"`
    Shift     model.Shift `json:"shift"`
    RoomID    int64       `json:"room_id"`
    EventName string      `json:"event_name"`
}

// Create validates the candidate and stores it, returning the new folio.
// Checks run in a fixed order and the first failure is returned:
// client, room, lead time, blackout day, shift, event name, and finally
// slot availability.  The availability check and the insert share one
// transaction, and the storage unique index backs both up, so a lost race
// is reported as repository.ErrSlotTaken and nothing is written.
func (s *ReservationService) Create(ctx context.Context, in CreateInput) (int64, error) {
    ok, err := s.clients.Exists(ctx, in.ClientID)
    if err != nil {
        return 0, err
    }
    if !ok {
        return 0, repository.Detail(repository.ErrUnknownClient, "client %d", in.ClientID)
    }
    ok, err = s.rooms.Exists(ctx, in.RoomID)
    if err != nil {
        return 0, err
    }
    if !ok {
        return 0, repository.Detail(repository.ErrUnknownRoom, "room %d", in.RoomID)
    }
    if err := s.CheckDate(in.Date); err != nil {
        return 0, err
    }
    if !in.Shift.Valid() {
        return 0, repository.Detail(repository.ErrInvalidShift, "got %q", string(in.Shift))
    }
    name, err := s.eventName(in.EventName)
    if err != nil {
        return 0, err
    }

    tx, err := s.reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return 0, repository.Storage("begin create", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    taken, err := s.reservations.SlotTakenTx(ctx, tx, in.Date, in.RoomID, in.Shift)
    if err != nil {
        return 0, err
    }
    if taken {
        return 0, repository.ErrSlotTaken
    }
    rec := &repository.ReservationRecord{
        ClientID:  in.ClientID,
        RoomID:    in.RoomID,
        Date:      in.Date,
        Shift:     in.Shift,
        EventName: name,
    }
    if err := s.reservations.CreateTx(ctx, tx, rec); err != nil {
        return 0, err
    }
    if err := tx.Commit(); err != nil {
        return 0, repository.Storage("commit create", err)
    }
    committed = true

    s.log.Info("reservation created",
        "folio", rec.Folio, "date", in.Date.String(), "room_id", in.RoomID, "shift", string(in.Shift))
    s.publish(ctx, queue.ReservationEvent{
        Type:      queue.EventReservationCreated,
        Folio:     rec.Folio,
        ClientID:  rec.ClientID,
        RoomID:    rec.RoomID,
        Date:      rec.Date.String(),
        Shift:     string(rec.Shift),
        EventName: rec.EventName,
    })
    return rec.Folio, nil
}

// CheckDate applies the date rules of Create on their own: the date must
// be set, respect the lead time and not fall on a blackout day.
func (s *ReservationService) CheckDate(date model.Date) error {
    if date.IsZero() {
        return repository.ErrInvalidDate
    }
    earliest := s.policy.EarliestDate(s.clock)
    if date.Before(earliest) {
        return repository.Detail(repository.ErrLeadTime, "%s is before %s", date, earliest)
    }
    if s.policy.IsBlackout(date) {
        return repository.Detail(repository.ErrBlackoutDay, "%s is a %s", date, date.Weekday())
    }
    return nil
}

// Rename replaces the event name of a reservation.  Cancelled
// reservations may be renamed too.  Renaming to the current name succeeds.
func (s *ReservationService) Rename(ctx context.Context, folio int64, newName string) error {
    name, err := s.eventName(newName)
    if err != nil {
        return err
    }
    tx, err := s.reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return repository.Storage("begin rename", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    res, err := s.reservations.GetByFolioTx(ctx, tx, folio)
    if err != nil {
        return err
    }
    if err := s.reservations.RenameTx(ctx, tx, folio, name); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return repository.Storage("commit rename", err)
    }
    committed = true

    s.log.Info("reservation renamed", "folio", folio)
    s.publish(ctx, queue.ReservationEvent{
        Type:      queue.EventReservationRenamed,
        Folio:     res.Folio,
        ClientID:  res.ClientID,
        RoomID:    res.RoomID,
        Date:      res.Date.String(),
        Shift:     string(res.Shift),
        EventName: name,
    })
    return nil
}

// Cancel soft-deletes an active reservation and frees its slot.  Unknown
// folios yield ErrReservationNotFound; cancelling twice yields
// ErrAlreadyCancelled and changes nothing.
func (s *ReservationService) Cancel(ctx context.Context, folio int64) error {
    tx, err := s.reservations.DB().BeginTx(ctx, nil)
    if err != nil {
        return repository.Storage("begin cancel", err)
    }
    committed := false
    defer func() {
        if !committed {
            _ = tx.Rollback()
        }
    }()
    res, err := s.reservations.GetByFolioTx(ctx, tx, folio)
    if err != nil {
        return err
    }
    if res.Cancelled {
        return repository.ErrAlreadyCancelled
    }
    if err := s.reservations.CancelTx(ctx, tx, folio); err != nil {
        return err
    }
    if err := tx.Commit(); err != nil {
        return repository.Storage("commit cancel", err)
    }
    committed = true

    s.log.Info("reservation cancelled", "folio", folio)
    s.publish(ctx, queue.ReservationEvent{
        Type:      queue.EventReservationCancelled,
        Folio:     res.Folio,
        ClientID:  res.ClientID,
        RoomID:    res.RoomID,
        Date:      res.Date.String(),
        Shift:     string(res.Shift),
        EventName: res.EventName,
    })
    return nil
}
