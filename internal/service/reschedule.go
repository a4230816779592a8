package service

import (
    "context"
    "errors"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

// MaxRescheduleDays bounds how far ProposeNextBookable and
// CreateRescheduled walk forward looking for a bookable date.
const MaxRescheduleDays = 14

// ErrNoBookableDate is returned when no date within MaxRescheduleDays
// passes the date rules.
var ErrNoBookableDate = repository.Detail(repository.ErrValidation, "no bookable date within %d days", MaxRescheduleDays)

// ProposeNextBookable returns from itself when it is bookable, otherwise
// the first later date that satisfies the lead time and is not a blackout
// day.  A date inside the lead time jumps straight to EarliestDate; only
// blackout days count against MaxRescheduleDays.  It only looks at the
// calendar; slot availability is left to Create.
func (s *ReservationService) ProposeNextBookable(from model.Date) (model.Date, error) {
    if from.IsZero() {
        return model.Date{}, repository.ErrInvalidDate
    }
    d := from
    for skipped := 0; skipped <= MaxRescheduleDays; {
        err := s.CheckDate(d)
        if err == nil {
            return d, nil
        }
        next, counted, ok := s.nextCandidate(d, err)
        if !ok {
            return model.Date{}, err
        }
        d = next
        if counted {
            skipped++
        }
    }
    return model.Date{}, ErrNoBookableDate
}

// CreateRescheduled calls Create and, while the requested date is
// rejected for lead time or as a blackout day, retries on the next
// candidate date chosen the way ProposeNextBookable chooses it.  It
// returns the folio and the date that was finally booked.  Every other
// error, a taken slot included, is returned as is.
func (s *ReservationService) CreateRescheduled(ctx context.Context, in CreateInput) (int64, model.Date, error) {
    for skipped := 0; skipped <= MaxRescheduleDays; {
        folio, err := s.Create(ctx, in)
        if err == nil {
            return folio, in.Date, nil
        }
        next, counted, ok := s.nextCandidate(in.Date, err)
        if !ok {
            return 0, model.Date{}, err
        }
        in.Date = next
        if counted {
            skipped++
        }
    }
    return 0, model.Date{}, ErrNoBookableDate
}

// nextCandidate picks the date to try after d was rejected with err.  ok
// is false when err is not a date rule.  counted reports whether the step
// uses up one of the MaxRescheduleDays tries.
func (s *ReservationService) nextCandidate(d model.Date, err error) (next model.Date, counted, ok bool) {
    if errors.Is(err, repository.ErrLeadTime) {
        if earliest := s.EarliestDate(); d.Before(earliest) {
            return earliest, false, true
        }
    }
    if !reschedulable(err) {
        return model.Date{}, false, false
    }
    return d.AddDays(1), true, true
}

func reschedulable(err error) bool {
    return errors.Is(err, repository.ErrBlackoutDay) || errors.Is(err, repository.ErrLeadTime)
}
