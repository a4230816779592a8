package model

import (
    "fmt"
    "strings"
)

// Shift is one of the three fixed blocks a room can be booked for within
// a day.  The stored value is the upper-case constant; Label returns the
// human readable form used by reports and the console.
type Shift string

const (
    ShiftMorning   Shift = "MORNING"   // reservations.shift = 'MORNING'
    ShiftAfternoon Shift = "AFTERNOON" // reservations.shift = 'AFTERNOON'
    ShiftNight     Shift = "NIGHT"     // reservations.shift = 'NIGHT'
)

// shiftCatalog is kept in declaration order; that order is the display order.
var shiftCatalog = [...]Shift{ShiftMorning, ShiftAfternoon, ShiftNight}

// Shifts returns the catalog in display order.  A fresh slice is returned
// on every call so callers cannot alter the catalog.
func Shifts() []Shift {
    out := make([]Shift, len(shiftCatalog))
    copy(out, shiftCatalog[:])
    return out
}

// Valid reports whether s is part of the catalog.
func (s Shift) Valid() bool {
    for _, c := range shiftCatalog {
        if s == c {
            return true
        }
    }
    return false
}

// Label returns "Morning", "Afternoon" or "Night".
func (s Shift) Label() string {
    if !s.Valid() {
        return string(s)
    }
    v := strings.ToLower(string(s))
    return strings.ToUpper(v[:1]) + v[1:]
}

// Order returns the position of s in the catalog, or -1 when unknown.
func (s Shift) Order() int {
    for i, c := range shiftCatalog {
        if s == c {
            return i
        }
    }
    return -1
}

// ParseShift accepts the stored constant or its label in any letter case.
func ParseShift(raw string) (Shift, error) {
    s := Shift(strings.ToUpper(strings.TrimSpace(raw)))
    if !s.Valid() {
        return "", fmt.Errorf("unknown shift %q", raw)
    }
    return s, nil
}
