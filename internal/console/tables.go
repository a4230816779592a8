package console

import (
    "strconv"
    "strings"

    "github.com/charmbracelet/lipgloss"
    "github.com/charmbracelet/lipgloss/table"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
    "github.com/iliyamo/coworking-reservation/internal/service"
    "github.com/iliyamo/coworking-reservation/internal/utils"
)

type styles struct {
    title     lipgloss.Style
    heading   lipgloss.Style
    header    lipgloss.Style
    cell      lipgloss.Style
    border    lipgloss.Style
    errorText lipgloss.Style
    success   lipgloss.Style
}

// newStyles binds every style to r so colour is dropped automatically
// when the output is not a terminal.
func newStyles(r *lipgloss.Renderer) styles {
    return styles{
        title:     r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
        heading:   r.NewStyle().Bold(true),
        header:    r.NewStyle().Bold(true).Padding(0, 1),
        cell:      r.NewStyle().Padding(0, 1),
        border:    r.NewStyle().Foreground(lipgloss.Color("8")),
        errorText: r.NewStyle().Foreground(lipgloss.Color("9")),
        success:   r.NewStyle().Foreground(lipgloss.Color("10")),
    }
}

func (s styles) table(headers ...string) *table.Table {
    return table.New().
        Border(lipgloss.NormalBorder()).
        BorderStyle(s.border).
        Headers(headers...).
        StyleFunc(func(row, _ int) lipgloss.Style {
            if row == table.HeaderRow {
                return s.header
            }
            return s.cell
        })
}

func (c *Console) printTable(t *table.Table) { c.println(t.Render()) }

func (c *Console) clientTable(clients []model.Client) *table.Table {
    t := c.styles.table("ID", "Name", "Surname")
    for _, cl := range clients {
        t.Row(strconv.FormatInt(cl.ID, 10), cl.Name, cl.Surname)
    }
    return t
}

func (c *Console) roomTable(rooms []model.Room) *table.Table {
    t := c.styles.table("ID", "Name", "Capacity")
    for _, r := range rooms {
        t.Row(strconv.FormatInt(r.ID, 10), r.Name, strconv.Itoa(r.Capacity))
    }
    return t
}

func (c *Console) availabilityTable(avail []service.RoomAvailability) *table.Table {
    t := c.styles.table("Room ID", "Name", "Capacity", "Available shifts")
    for _, a := range avail {
        labels := make([]string, len(a.Shifts))
        for i, s := range a.Shifts {
            labels[i] = s.Label()
        }
        t.Row(strconv.FormatInt(a.RoomID, 10), a.Name, strconv.Itoa(a.Capacity), strings.Join(labels, ", "))
    }
    return t
}

func (c *Console) dayTable(details []repository.ReservationDetail) *table.Table {
    t := c.styles.table("Folio", "Room", "Client", "Event", "Shift")
    for _, d := range details {
        t.Row(strconv.FormatInt(d.Folio, 10), d.RoomName, d.ClientName, d.EventName, d.Shift.Label())
    }
    return t
}

func (c *Console) rangeTable(details []repository.ReservationDetail) *table.Table {
    t := c.styles.table("Folio", "Event", "Date", "Shift", "Room")
    for _, d := range details {
        t.Row(strconv.FormatInt(d.Folio, 10), d.EventName, utils.FormatUserDate(d.Date), d.Shift.Label(), d.RoomName)
    }
    return t
}
