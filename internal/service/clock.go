package service

import (
    "fmt"
    "strings"
    "time"

    "github.com/iliyamo/coworking-reservation/internal/model"
)

// Clock supplies the current time.  Tests inject a fixed clock so lead
// time rules are deterministic.
type Clock interface {
    Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// Policy holds the booking rules applied when a reservation is created.
//
//  LeadDays – minimum number of calendar days between today and the
//             reserved date (2 means "the day after tomorrow or later").
//  Blackout – weekdays on which no reservation may be created.
//  Location – time zone that defines "today".
type Policy struct {
    LeadDays int
    Blackout []time.Weekday
    Location *time.Location
}

// DefaultPolicy is two days of lead time with Sundays blacked out.
func DefaultPolicy() Policy {
    return Policy{
        LeadDays: 2,
        Blackout: []time.Weekday{time.Sunday},
        Location: time.Local,
    }
}

// NewPolicy builds a Policy from configuration values.  blackout is a
// comma separated list of weekday names; a nil loc means time.Local.
func NewPolicy(leadDays int, blackout string, loc *time.Location) (Policy, error) {
    if leadDays < 0 {
        return Policy{}, fmt.Errorf("lead days must not be negative, got %d", leadDays)
    }
    days, err := ParseWeekdays(blackout)
    if err != nil {
        return Policy{}, err
    }
    if loc == nil {
        loc = time.Local
    }
    return Policy{LeadDays: leadDays, Blackout: days, Location: loc}, nil
}

// IsBlackout reports whether no reservations are accepted on d.
func (p Policy) IsBlackout(d model.Date) bool {
    for _, wd := range p.Blackout {
        if d.Weekday() == wd {
            return true
        }
    }
    return false
}

// Today returns the current calendar date in the policy's location.
func (p Policy) Today(clock Clock) model.Date {
    loc := p.Location
    if loc == nil {
        loc = time.Local
    }
    return model.DateOf(clock.Now().In(loc))
}

// EarliestDate is the first date that satisfies the lead time.
func (p Policy) EarliestDate(clock Clock) model.Date {
    return p.Today(clock).AddDays(p.LeadDays)
}

// ParseWeekdays turns "sunday,saturday" into weekdays.  Unknown names are
// reported; an empty string yields no blackout days.
func ParseWeekdays(s string) ([]time.Weekday, error) {
    var out []time.Weekday
    for _, part := range strings.Split(s, ",") {
        name := strings.ToLower(strings.TrimSpace(part))
        if name == "" {
            continue
        }
        wd, ok := weekdayNames[name]
        if !ok {
            return nil, &unknownWeekdayError{name: part}
        }
        out = append(out, wd)
    }
    return out, nil
}

var weekdayNames = map[string]time.Weekday{
    "sunday": time.Sunday, "sun": time.Sunday,
    "monday": time.Monday, "mon": time.Monday,
    "tuesday": time.Tuesday, "tue": time.Tuesday,
    "wednesday": time.Wednesday, "wed": time.Wednesday,
    "thursday": time.Thursday, "thu": time.Thursday,
    "friday": time.Friday, "fri": time.Friday,
    "saturday": time.Saturday, "sat": time.Saturday,
}

type unknownWeekdayError struct{ name string }

func (e *unknownWeekdayError) Error() string { return "unknown weekday " + strings.TrimSpace(e.name) }
