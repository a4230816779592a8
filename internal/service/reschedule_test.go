package service

import (
    "context"
    "errors"
    "testing"
    "time"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

func TestProposeNextBookable(t *testing.T) {
    f := newFixture(t, utcPolicy(), friday)

    tests := []struct {
        name string
        from model.Date
        want model.Date
    }{
        {"bookable date is kept", date(8), date(8)},
        {"sunday moves to monday", date(10), date(11)},
        {"too early moves to earliest", date(2), date(4)},
        {"past date moves forward", model.NewDate(2099, time.April, 1), date(4)},
        {"long past date moves forward", model.NewDate(2098, time.January, 15), date(4)},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            got, err := f.svc.ProposeNextBookable(tt.from)
            if err != nil {
                t.Fatalf("ProposeNextBookable(%s): %v", tt.from, err)
            }
            if !got.Equal(tt.want) {
                t.Fatalf("got %s, want %s", got, tt.want)
            }
        })
    }

    if _, err := f.svc.ProposeNextBookable(model.Date{}); !errors.Is(err, repository.ErrInvalidDate) {
        t.Fatalf("zero date error = %v, want ErrInvalidDate", err)
    }
}

func TestProposeNextBookableGivesUp(t *testing.T) {
    policy := utcPolicy()
    policy.Blackout = []time.Weekday{
        time.Sunday, time.Monday, time.Tuesday, time.Wednesday,
        time.Thursday, time.Friday, time.Saturday,
    }
    f := newFixture(t, policy, friday)
    if _, err := f.svc.ProposeNextBookable(date(8)); !errors.Is(err, ErrNoBookableDate) {
        t.Fatalf("error = %v, want ErrNoBookableDate", err)
    }
}

func TestCreateRescheduled(t *testing.T) {
    f := newFixture(t, utcPolicy(), friday)
    ctx := context.Background()

    folio, booked, err := f.svc.CreateRescheduled(ctx, f.input(date(10), model.ShiftNight, "Sunday party"))
    if err != nil {
        t.Fatalf("CreateRescheduled: %v", err)
    }
    if !booked.Equal(date(11)) {
        t.Fatalf("booked %s, want %s", booked, date(11))
    }
    res, err := f.repo.GetByFolio(ctx, folio)
    if err != nil {
        t.Fatalf("GetByFolio: %v", err)
    }
    if !res.Date.Equal(date(11)) {
        t.Fatalf("stored date %s, want %s", res.Date, date(11))
    }

    // A date weeks in the past lands on the earliest bookable day, and the
    // Sunday at the end of the lead time is skipped.
    folio, booked, err = f.svc.CreateRescheduled(ctx, f.input(model.NewDate(2099, time.April, 11), model.ShiftMorning, "Late planner"))
    if err != nil {
        t.Fatalf("CreateRescheduled from 2099-04-11: %v", err)
    }
    if !booked.Equal(date(4)) || folio == 0 {
        t.Fatalf("booked %s folio %d, want %s", booked, folio, date(4))
    }

    // A taken slot is not rescheduled.
    _, _, err = f.svc.CreateRescheduled(ctx, f.input(date(11), model.ShiftNight, "Again"))
    if !errors.Is(err, repository.ErrSlotTaken) {
        t.Fatalf("error = %v, want ErrSlotTaken", err)
    }
    // Neither is an unknown client.
    in := f.input(date(10), model.ShiftNight, "Ghost")
    in.ClientID = 77
    if _, _, err := f.svc.CreateRescheduled(ctx, in); !errors.Is(err, repository.ErrUnknownClient) {
        t.Fatalf("error = %v, want ErrUnknownClient", err)
    }
}

func TestNewPolicy(t *testing.T) {
    p, err := NewPolicy(3, "sat,sun", time.UTC)
    if err != nil {
        t.Fatalf("NewPolicy: %v", err)
    }
    if p.LeadDays != 3 || len(p.Blackout) != 2 || p.Location != time.UTC {
        t.Fatalf("policy = %+v", p)
    }
    if !p.IsBlackout(date(9)) || !p.IsBlackout(date(10)) || p.IsBlackout(date(11)) {
        t.Fatal("blackout days not applied")
    }
    if _, err := NewPolicy(-1, "", nil); err == nil {
        t.Fatal("negative lead days accepted")
    }
    if _, err := NewPolicy(2, "someday", nil); err == nil {
        t.Fatal("unknown weekday accepted")
    }
}
