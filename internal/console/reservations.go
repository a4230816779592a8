package console

import (
    "context"
    "errors"
    "fmt"
    "os"
    "path/filepath"
    "slices"

    "github.com/iliyamo/coworking-reservation/internal/export"
    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
    "github.com/iliyamo/coworking-reservation/internal/service"
    "github.com/iliyamo/coworking-reservation/internal/utils"
)

// registerReservation walks the operator through client, date, room,
// shift and event name, then books the slot.  A date on a blackout day
// gets the next bookable date proposed instead.
func (c *Console) registerReservation(ctx context.Context) error {
    clientID, ok, err := c.pickClient(ctx)
    if err != nil || !ok {
        return err
    }

    date, err := c.askDate("Reservation date (dd/mm/yyyy): ")
    if err != nil {
        return err
    }
    if err := c.svc.CheckDate(date); err != nil {
        switch {
        case errors.Is(err, repository.ErrLeadTime):
            c.printf("Reservations must be made at least %d days in advance.\n", c.svc.Policy().LeadDays)
            return nil
        case errors.Is(err, repository.ErrBlackoutDay):
            next, perr := c.svc.ProposeNextBookable(date)
            if perr != nil {
                return perr
            }
            c.printf("Reservations are not accepted on %s.\n", date.Weekday())
            yes, err := c.confirm(fmt.Sprintf("Book %s (%s) instead?", utils.FormatUserDate(next), next.Weekday()))
            if err != nil || !yes {
                return err
            }
            date = next
        default:
            return err
        }
    }

    roomID, shift, ok, err := c.pickSlot(ctx, date)
    if err != nil || !ok {
        return err
    }
    name, err := c.askEventName("Event name: ")
    if err != nil {
        return err
    }

    folio, err := c.svc.Create(ctx, service.CreateInput{
        ClientID:  clientID,
        RoomID:    roomID,
        Date:      date,
        Shift:     shift,
        EventName: name,
    })
    if err != nil {
        return err
    }
    c.ok(fmt.Sprintf("Reservation registered with folio %d.", folio))
    return nil
}

// pickClient lists clients and reads a registered id.  ok is false when
// the operator gives up or no client is registered.
func (c *Console) pickClient(ctx context.Context) (int64, bool, error) {
    clients, err := c.clients.List(ctx)
    if err != nil {
        return 0, false, err
    }
    if len(clients) == 0 {
        c.println("No clients are registered yet. Register a client first.")
        return 0, false, nil
    }
    for {
        c.printTable(c.clientTable(clients))
        raw, err := c.ask("Client ID: ")
        if err != nil {
            return 0, false, err
        }
        if id, perr := utils.ParseID(raw); perr == nil {
            exists, err := c.clients.Exists(ctx, id)
            if err != nil {
                return 0, false, err
            }
            if exists {
                return id, true, nil
            }
        }
        c.println("Please type a valid client ID.")
        quit, err := c.giveUp()
        if err != nil || quit {
            return 0, false, err
        }
    }
}

// pickSlot shows the free rooms for date and reads a room and a shift
// until the slot is available.
func (c *Console) pickSlot(ctx context.Context, date model.Date) (int64, model.Shift, bool, error) {
    for {
        avail, err := c.svc.AvailableRooms(ctx, date)
        if err != nil {
            return 0, "", false, err
        }
        if len(avail) == 0 {
            c.printf("No rooms or shifts are available on %s.\n", utils.FormatUserDate(date))
            return 0, "", false, nil
        }
        c.printf("Rooms available on %s:\n", utils.FormatUserDate(date))
        c.printTable(c.availabilityTable(avail))

        raw, err := c.ask("Room ID: ")
        if err != nil {
            return 0, "", false, err
        }
        roomID, perr := utils.ParseID(raw)
        if perr != nil {
            c.println("Invalid room ID.")
            continue
        }
        if exists, err := c.rooms.Exists(ctx, roomID); err != nil {
            return 0, "", false, err
        } else if !exists {
            c.println("Invalid room ID.")
            continue
        }

        raw, err = c.ask("Shift (Morning, Afternoon, Night): ")
        if err != nil {
            return 0, "", false, err
        }
        shift, perr := model.ParseShift(raw)
        if perr != nil {
            c.println("Invalid shift.")
            continue
        }
        free, err := c.svc.IsAvailable(ctx, date, roomID, shift)
        if err != nil {
            return 0, "", false, err
        }
        if free {
            return roomID, shift, true, nil
        }
        c.println("That room is already booked for this shift.")
    }
}

// pickFolio lists active reservations in a date range and reads one of
// their folios.  ok is false when the range is empty or the operator
// gives up.
func (c *Console) pickFolio(ctx context.Context, prompt string) (int64, bool, error) {
    start, end, err := c.askRange()
    if err != nil {
        return 0, false, err
    }
    details, folios, err := c.svc.ByRange(ctx, start, end)
    if err != nil {
        return 0, false, err
    }
    if len(folios) == 0 {
        c.println("No events in this date range.")
        return 0, false, nil
    }
    c.printf("Events from %s to %s:\n", utils.FormatUserDate(start), utils.FormatUserDate(end))
    c.printTable(c.rangeTable(details))
    for {
        raw, err := c.ask(prompt)
        if err != nil {
            return 0, false, err
        }
        if folio, perr := utils.ParseID(raw); perr == nil && slices.Contains(folios, folio) {
            return folio, true, nil
        }
        c.println("That folio is not in this range. Please pick one from the list.")
        quit, err := c.giveUp()
        if err != nil || quit {
            return 0, false, err
        }
    }
}

func (c *Console) editEventName(ctx context.Context) error {
    folio, ok, err := c.pickFolio(ctx, "Folio of the event to rename: ")
    if err != nil || !ok {
        return err
    }
    name, err := c.askEventName("New event name: ")
    if err != nil {
        return err
    }
    if err := c.svc.Rename(ctx, folio, name); err != nil {
        return err
    }
    c.ok(fmt.Sprintf("Event name updated for folio %d.", folio))
    return nil
}

func (c *Console) cancelReservation(ctx context.Context) error {
    folio, ok, err := c.pickFolio(ctx, "Folio of the reservation to cancel: ")
    if err != nil || !ok {
        return err
    }
    yes, err := c.confirm(fmt.Sprintf("Cancel reservation %d?", folio))
    if err != nil || !yes {
        return err
    }
    if err := c.svc.Cancel(ctx, folio); err != nil {
        return err
    }
    c.ok(fmt.Sprintf("Reservation %d cancelled.", folio))
    return nil
}

func (c *Console) reportByDate(ctx context.Context) error {
    date, err := c.askDate("Date to look up (dd/mm/yyyy): ")
    if err != nil {
        return err
    }
    details, err := c.svc.ByDate(ctx, date)
    if err != nil {
        return err
    }
    if len(details) == 0 {
        c.println("There are no reservations for this date.")
        return nil
    }
    c.printf("Reservations for %s:\n", utils.FormatUserDate(date))
    c.printTable(c.dayTable(details))
    return nil
}

// exportByDate writes the day's reservations to a file in the export
// directory.
func (c *Console) exportByDate(ctx context.Context) error {
    date, err := c.askDate("Date to export (dd/mm/yyyy): ")
    if err != nil {
        return err
    }
    var format export.Format
    for {
        raw, err := c.ask("Format (csv, json, yaml, xlsx): ")
        if err != nil {
            return err
        }
        if format, err = export.ParseFormat(raw); err == nil {
            break
        }
        c.println("Unsupported format.")
    }
    details, err := c.svc.ByDate(ctx, date)
    if err != nil {
        return err
    }
    if err := os.MkdirAll(c.exportDir, 0o755); err != nil {
        return err
    }
    path := filepath.Join(c.exportDir, format.FileName(date))
    f, err := os.Create(path)
    if err != nil {
        return err
    }
    if err := export.Write(f, format, date, export.Rows(details)); err != nil {
        f.Close()
        return err
    }
    if err := f.Close(); err != nil {
        return err
    }
    c.ok(fmt.Sprintf("Exported %d reservations to %s.", len(details), path))
    return nil
}
