package service

import (
    "context"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

// ByDate returns the active reservations on date, ordered by folio.
func (s *ReservationService) ByDate(ctx context.Context, date model.Date) ([]repository.ReservationDetail, error) {
    if date.IsZero() {
        return nil, repository.ErrInvalidDate
    }
    return s.reservations.ListByDate(ctx, date)
}

// ByRange returns the active reservations with start <= date <= end,
// ordered by date then folio, together with their folios in the same
// order.  Callers validate edit and cancel input against that folio list.
func (s *ReservationService) ByRange(ctx context.Context, start, end model.Date) ([]repository.ReservationDetail, []int64, error) {
    if start.IsZero() || end.IsZero() {
        return nil, nil, repository.ErrInvalidDate
    }
    if start.After(end) {
        return nil, nil, repository.Detail(repository.ErrInvalidRange, "%s > %s", start, end)
    }
    details, err := s.reservations.ListByRange(ctx, start, end)
    if err != nil {
        return nil, nil, err
    }
    folios := make([]int64, len(details))
    for i, d := range details {
        folios[i] = d.Folio
    }
    return details, folios, nil
}
