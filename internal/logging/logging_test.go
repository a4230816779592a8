package logging

import (
    "bytes"
    "encoding/json"
    "log/slog"
    "strings"
    "testing"
)

func TestNewWithWriterJSON(t *testing.T) {
    var buf bytes.Buffer
    log := NewWithWriter(&buf, true, slog.LevelInfo)
    log.Debug("hidden")
    log.Info("reservation created", "folio", 7)

    var rec map[string]any
    if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &rec); err != nil {
        t.Fatalf("output is not one JSON record: %q", buf.String())
    }
    if rec["msg"] != "reservation created" || rec["folio"] != float64(7) {
        t.Fatalf("record = %v", rec)
    }
}

func TestNewWithWriterText(t *testing.T) {
    var buf bytes.Buffer
    NewWithWriter(&buf, false, slog.LevelWarn).Warn("slow", "ms", 12)
    if out := buf.String(); !strings.Contains(out, "msg=slow") || !strings.Contains(out, "ms=12") {
        t.Fatalf("text output = %q", out)
    }
}

func TestParseLevel(t *testing.T) {
    tests := map[string]slog.Level{
        "":        slog.LevelInfo,
        "DEBUG":   slog.LevelDebug,
        "warning": slog.LevelWarn,
        " error ": slog.LevelError,
        "chatty":  slog.LevelInfo,
    }
    for in, want := range tests {
        if got := ParseLevel(in); got != want {
            t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
        }
    }
}
