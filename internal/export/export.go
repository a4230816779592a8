// Package export renders the reservations of one date as CSV, JSON, YAML
// or an Excel workbook.  Rows keep the order they are given in, which is
// folio order when they come from the query layer.
package export

import (
    "encoding/csv"
    "encoding/json"
    "fmt"
    "io"
    "strconv"
    "strings"

    "github.com/xuri/excelize/v2"
    "gopkg.in/yaml.v3"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

// Row is one exported reservation.
type Row struct {
    Folio  int64  `json:"folio" yaml:"folio"`
    Room   string `json:"room" yaml:"room"`
    Client string `json:"client" yaml:"client"`
    Event  string `json:"event" yaml:"event"`
    Shift  string `json:"shift" yaml:"shift"`
}

// Report is the document written for the JSON and YAML formats.
type Report struct {
    Date         string `json:"date" yaml:"date"`
    Reservations []Row  `json:"reservations" yaml:"reservations"`
}

var header = []string{"Folio", "Room", "Client", "Event", "Shift"}

// SheetName is the worksheet that holds the rows in an xlsx export.
const SheetName = "Reservations"

// Format names an export encoding.
type Format string

const (
    CSV  Format = "csv"
    JSON Format = "json"
    YAML Format = "yaml"
    XLSX Format = "xlsx"
)

// Formats lists the supported formats in menu order.
func Formats() []Format { return []Format{CSV, JSON, YAML, XLSX} }

// ParseFormat accepts a format name in any case; "yml" is YAML.
func ParseFormat(s string) (Format, error) {
    switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
    case CSV, JSON, YAML, XLSX:
        return f, nil
    case "yml":
        return YAML, nil
    }
    return "", fmt.Errorf("unsupported export format %q", s)
}

// ContentType is the MIME type served for f.
func (f Format) ContentType() string {
    switch f {
    case CSV:
        return "text/csv; charset=utf-8"
    case JSON:
        return "application/json"
    case YAML:
        return "application/yaml"
    case XLSX:
        return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
    }
    return "application/octet-stream"
}

// FileName is the suggested download name for a report of date.
func (f Format) FileName(date model.Date) string {
    return "reservations_" + date.String() + "." + string(f)
}

// Rows converts query results into export rows.
func Rows(details []repository.ReservationDetail) []Row {
    rows := make([]Row, len(details))
    for i, d := range details {
        rows[i] = Row{
            Folio:  d.Folio,
            Room:   d.RoomName,
            Client: d.ClientName,
            Event:  d.EventName,
            Shift:  d.Shift.Label(),
        }
    }
    return rows
}

// Write encodes the report for date in format f.
func Write(w io.Writer, f Format, date model.Date, rows []Row) error {
    if rows == nil {
        rows = []Row{}
    }
    switch f {
    case CSV:
        return writeCSV(w, rows)
    case JSON:
        enc := json.NewEncoder(w)
        enc.SetIndent("", "  ")
        return enc.Encode(Report{Date: date.String(), Reservations: rows})
    case YAML:
        enc := yaml.NewEncoder(w)
        enc.SetIndent(2)
        if err := enc.Encode(Report{Date: date.String(), Reservations: rows}); err != nil {
            return err
        }
        return enc.Close()
    case XLSX:
        return writeXLSX(w, date, rows)
    }
    return fmt.Errorf("unsupported export format %q", f)
}

func writeCSV(w io.Writer, rows []Row) error {
    cw := csv.NewWriter(w)
    if err := cw.Write(header); err != nil {
        return err
    }
    for _, r := range rows {
        if err := cw.Write([]string{strconv.FormatInt(r.Folio, 10), r.Room, r.Client, r.Event, r.Shift}); err != nil {
            return err
        }
    }
    cw.Flush()
    return cw.Error()
}

// writeXLSX lays out a title row, a bold header row and one row per
// reservation on the Reservations sheet.
func writeXLSX(w io.Writer, date model.Date, rows []Row) error {
    f := excelize.NewFile()
    defer func() { _ = f.Close() }()

    if err := f.SetSheetName("Sheet1", SheetName); err != nil {
        return err
    }
    if err := f.SetCellValue(SheetName, "A1", "Reservations for "+date.String()); err != nil {
        return err
    }
    bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
    if err != nil {
        return err
    }
    hdr := make([]any, len(header))
    for i, h := range header {
        hdr[i] = h
    }
    if err := f.SetSheetRow(SheetName, "A2", &hdr); err != nil {
        return err
    }
    if err := f.SetCellStyle(SheetName, "A1", "E2", bold); err != nil {
        return err
    }
    for i, r := range rows {
        cell, err := excelize.CoordinatesToCellName(1, i+3)
        if err != nil {
            return err
        }
        values := []any{r.Folio, r.Room, r.Client, r.Event, r.Shift}
        if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
            return err
        }
    }
    if err := f.SetColWidth(SheetName, "B", "D", 24); err != nil {
        return err
    }
    return f.Write(w)
}
