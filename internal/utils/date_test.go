package utils

import (
    "testing"
    "time"

    "github.com/iliyamo/coworking-reservation/internal/model"
)

func TestParseUserDate(t *testing.T) {
    want := model.NewDate(2099, time.May, 10)
    for _, in := range []string{"10/05/2099", " 2099-05-10 "} {
        got, err := ParseUserDate(in)
        if err != nil {
            t.Fatalf("ParseUserDate(%q): %v", in, err)
        }
        if !got.Equal(want) {
            t.Fatalf("ParseUserDate(%q) = %s", in, got)
        }
    }
    for _, in := range []string{"", "31/02/2099", "05-10-2099", "2099/05/10"} {
        if _, err := ParseUserDate(in); err == nil {
            t.Errorf("ParseUserDate(%q) accepted", in)
        }
    }
    if got := FormatUserDate(want); got != "10/05/2099" {
        t.Fatalf("FormatUserDate = %q", got)
    }
}

func TestParseID(t *testing.T) {
    if id, err := ParseID(" 42 "); err != nil || id != 42 {
        t.Fatalf("ParseID = %d, %v", id, err)
    }
    for _, in := range []string{"0", "-3", "abc", ""} {
        if _, err := ParseID(in); err == nil {
            t.Errorf("ParseID(%q) accepted", in)
        }
    }
}
