package model

import (
    "database/sql/driver"
    "encoding/json"
    "fmt"
    "time"
)

// DateLayout is the wire and storage layout for calendar dates.
const DateLayout = "2006-01-02"

// Date is a calendar date without a time component.  The zero value is
// not a valid reservation date.  Internally it holds midnight UTC so two
// equal dates always compare equal with ==.
type Date struct {
    t time.Time
}

// NewDate builds a Date, normalising out-of-range values the way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
    return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf returns the calendar date of t as seen in t's own location.
func DateOf(t time.Time) Date {
    return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses a YYYY-MM-DD string.
func ParseDate(s string) (Date, error) {
    t, err := time.Parse(DateLayout, s)
    if err != nil {
        return Date{}, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
    }
    return DateOf(t), nil
}

func (d Date) IsZero() bool { return d.t.IsZero() }
func (d Date) Time() time.Time { return d.t }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }
func (d Date) Before(o Date) bool { return d.t.Before(o.t) }
func (d Date) After(o Date) bool { return d.t.After(o.t) }
func (d Date) Equal(o Date) bool { return d.t.Equal(o.t) }
func (d Date) Format(layout string) string { return d.t.Format(layout) }

func (d Date) String() string {
    if d.IsZero() {
        return ""
    }
    return d.t.Format(DateLayout)
}

// Value stores the date as a YYYY-MM-DD string, which both MySQL DATE
// columns and SQLite TEXT columns compare correctly.
func (d Date) Value() (driver.Value, error) {
    if d.IsZero() {
        return nil, nil
    }
    return d.String(), nil
}

// Scan accepts time.Time (MySQL with parseTime=true) as well as textual
// values (SQLite, or MySQL without parseTime).
func (d *Date) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        *d = Date{}
        return nil
    case time.Time:
        *d = DateOf(v)
        return nil
    case string:
        return d.scanText(v)
    case []byte:
        return d.scanText(string(v))
    }
    return fmt.Errorf("cannot scan %T into model.Date", src)
}

func (d *Date) scanText(s string) error {
    if len(s) < len(DateLayout) {
        return fmt.Errorf("invalid stored date %q", s)
    }
    parsed, err := ParseDate(s[:len(DateLayout)])
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

func (d Date) MarshalJSON() ([]byte, error) { return json.Marshal(d.String()) }

func (d *Date) UnmarshalJSON(b []byte) error {
    var s string
    if err := json.Unmarshal(b, &s); err != nil {
        return err
    }
    if s == "" {
        *d = Date{}
        return nil
    }
    parsed, err := ParseDate(s)
    if err != nil {
        return err
    }
    *d = parsed
    return nil
}

// MarshalYAML keeps exported reports readable.
func (d Date) MarshalYAML() (any, error) { return d.String(), nil }
