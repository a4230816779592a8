package model

import (
    "encoding/json"
    "testing"
    "time"
)

func TestShiftCatalog(t *testing.T) {
    got := Shifts()
    if len(got) != 3 || got[0] != ShiftMorning || got[1] != ShiftAfternoon || got[2] != ShiftNight {
        t.Fatalf("Shifts() = %v", got)
    }
    got[0] = "LUNCH"
    if Shifts()[0] != ShiftMorning {
        t.Fatal("catalog mutated through returned slice")
    }
    for i, s := range Shifts() {
        if s.Order() != i {
            t.Errorf("%s.Order() = %d, want %d", s, s.Order(), i)
        }
    }
    if Shift("LUNCH").Valid() || Shift("LUNCH").Order() != -1 {
        t.Fatal("unknown shift accepted")
    }
    if ShiftAfternoon.Label() != "Afternoon" {
        t.Fatalf("Label() = %q", ShiftAfternoon.Label())
    }
}

func TestParseShift(t *testing.T) {
    cases := map[string]Shift{
        "MORNING":     ShiftMorning,
        "afternoon":   ShiftAfternoon,
        "  Night ":    ShiftNight,
    }
    for in, want := range cases {
        got, err := ParseShift(in)
        if err != nil || got != want {
            t.Errorf("ParseShift(%q) = %q, %v", in, got, err)
        }
    }
    for _, in := range []string{"", "evening", "MORNINGS"} {
        if _, err := ParseShift(in); err == nil {
            t.Errorf("ParseShift(%q) accepted", in)
        }
    }
}

func TestDateCalendar(t *testing.T) {
    d, err := ParseDate("2099-05-10")
    if err != nil {
        t.Fatalf("ParseDate: %v", err)
    }
    if d.Weekday() != time.Sunday {
        t.Fatalf("2099-05-10 is %s", d.Weekday())
    }
    if next := d.AddDays(22); next.String() != "2099-06-01" {
        t.Fatalf("AddDays crossed month to %s", next)
    }
    if !d.Before(d.AddDays(1)) || !d.AddDays(1).After(d) || !d.Equal(NewDate(2099, time.May, 10)) {
        t.Fatal("ordering helpers disagree")
    }
    if d != DateOf(time.Date(2099, 5, 10, 23, 59, 0, 0, time.FixedZone("X", -6*3600))) {
        t.Fatal("DateOf should use the time's own calendar day")
    }
    for _, bad := range []string{"10/05/2099", "2099-02-30", ""} {
        if _, err := ParseDate(bad); err == nil {
            t.Errorf("ParseDate(%q) accepted", bad)
        }
    }
}

func TestDateScan(t *testing.T) {
    want := NewDate(2099, time.May, 8)
    for _, src := range []any{
        time.Date(2099, 5, 8, 0, 0, 0, 0, time.UTC),
        "2099-05-08",
        []byte("2099-05-08 00:00:00"),
    } {
        var d Date
        if err := d.Scan(src); err != nil {
            t.Fatalf("Scan(%T): %v", src, err)
        }
        if d != want {
            t.Fatalf("Scan(%T) = %s", src, d)
        }
    }
    var d Date
    if err := d.Scan(nil); err != nil || !d.IsZero() {
        t.Fatalf("Scan(nil) = %s, %v", d, err)
    }
    if err := d.Scan(42); err == nil {
        t.Fatal("Scan(int) accepted")
    }
    if v, _ := (Date{}).Value(); v != nil {
        t.Fatalf("zero Value() = %v", v)
    }
}

func TestDateJSON(t *testing.T) {
    b, err := json.Marshal(Slot{Date: NewDate(2099, time.May, 8), RoomID: 2, Shift: ShiftNight})
    if err != nil {
        t.Fatalf("marshal: %v", err)
    }
    if string(b) != `{"date":"2099-05-08","room_id":2,"shift":"NIGHT"}` {
        t.Fatalf("json = %s", b)
    }
    var s Slot
    if err := json.Unmarshal([]byte(`{"date":"2099-05-09"}`), &s); err != nil || s.Date.String() != "2099-05-09" {
        t.Fatalf("unmarshal = %+v, %v", s, err)
    }
    if err := json.Unmarshal([]byte(`{"date":"09/05/2099"}`), &s); err == nil {
        t.Fatal("display layout accepted on the wire")
    }
}

func TestClientFullName(t *testing.T) {
    if got := (Client{Name: "Ana", Surname: "Ruiz"}).FullName(); got != "Ana Ruiz" {
        t.Fatalf("FullName() = %q", got)
    }
    if got := (Client{Name: "Ana"}).FullName(); got != "Ana" {
        t.Fatalf("FullName() = %q", got)
    }
}
