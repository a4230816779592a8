package repository

import (
    "fmt"
    "time"
)

// timestamp scans created_at/updated_at columns from either driver.
// MySQL with parseTime=true yields time.Time; SQLite's CURRENT_TIMESTAMP
// default yields "YYYY-MM-DD HH:MM:SS" text.
type timestamp struct {
    Time time.Time
}

var timestampLayouts = []string{
    "2006-01-02 15:04:05",
    time.RFC3339Nano,
    "2006-01-02T15:04:05Z",
}

func (ts *timestamp) Scan(src any) error {
    switch v := src.(type) {
    case nil:
        ts.Time = time.Time{}
        return nil
    case time.Time:
        ts.Time = v.UTC()
        return nil
    case string:
        return ts.parse(v)
    case []byte:
        return ts.parse(string(v))
    }
    return fmt.Errorf("cannot scan %T into timestamp", src)
}

func (ts *timestamp) parse(s string) error {
    for _, layout := range timestampLayouts {
        if t, err := time.Parse(layout, s); err == nil {
            ts.Time = t.UTC()
            return nil
        }
    }
    return fmt.Errorf("unrecognised timestamp %q", s)
}
