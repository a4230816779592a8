package utils

import (
    "fmt"
    "strconv"
    "strings"
    "time"

    "github.com/iliyamo/coworking-reservation/internal/model"
)

// DisplayLayout is how dates are typed and shown on the console.
const DisplayLayout = "02/01/2006"

// ParseUserDate accepts dd/mm/yyyy as typed on the console, or the ISO
// form YYYY-MM-DD used by the HTTP API.
func ParseUserDate(raw string) (model.Date, error) {
    s := strings.TrimSpace(raw)
    if strings.Contains(s, "/") {
        t, err := time.Parse(DisplayLayout, s)
        if err != nil {
            return model.Date{}, fmt.Errorf("invalid date %q: expected dd/mm/yyyy", raw)
        }
        return model.DateOf(t), nil
    }
    return model.ParseDate(s)
}

// FormatUserDate renders d as dd/mm/yyyy.
func FormatUserDate(d model.Date) string {
    if d.IsZero() {
        return ""
    }
    return d.Format(DisplayLayout)
}

// ParseID parses a positive integer identifier such as a folio.
func ParseID(raw string) (int64, error) {
    id, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
    if err != nil || id <= 0 {
        return 0, fmt.Errorf("invalid id %q", raw)
    }
    return id, nil
}
