// Package console is the interactive menu operators use to register
// clients and rooms and to book, rename, cancel, list and export
// reservations.  It reads one answer per line and never exits on bad
// input; it re-prompts or returns to the menu instead.
package console

import (
    "bufio"
    "context"
    "errors"
    "fmt"
    "io"
    "strconv"
    "strings"

    "github.com/charmbracelet/lipgloss"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
    "github.com/iliyamo/coworking-reservation/internal/service"
    "github.com/iliyamo/coworking-reservation/internal/utils"
)

// MinEventNameLen is the shortest event name the console accepts.
const MinEventNameLen = 3

// errEOF ends the session when input runs out mid-dialog.
var errEOF = errors.New("input closed")

// Console runs the menu loop over an input and an output stream.
type Console struct {
    svc       *service.ReservationService
    clients   *repository.ClientRepo
    rooms     *repository.RoomRepo
    in        *bufio.Scanner
    out       io.Writer
    exportDir string
    styles    styles
}

// New builds a console.  Exports are written to exportDir.
func New(svc *service.ReservationService, clients *repository.ClientRepo, rooms *repository.RoomRepo, in io.Reader, out io.Writer, exportDir string) *Console {
    if svc == nil || clients == nil || rooms == nil {
        panic("nil dependency passed to console.New")
    }
    return &Console{
        svc:       svc,
        clients:   clients,
        rooms:     rooms,
        in:        bufio.NewScanner(in),
        out:       out,
        exportDir: exportDir,
        styles:    newStyles(lipgloss.NewRenderer(out)),
    }
}

type menuItem struct {
    label string
    run   func(context.Context) error
}

func (c *Console) menu() []menuItem {
    return []menuItem{
        {"Register a room reservation", c.registerReservation},
        {"Edit the event name of a reservation", c.editEventName},
        {"Cancel a reservation", c.cancelReservation},
        {"Show reservations for a date", c.reportByDate},
        {"Export reservations for a date", c.exportByDate},
        {"Register a new client", c.registerClient},
        {"Register a new room", c.registerRoom},
        {"Exit", nil},
    }
}

// Run shows the menu until the operator picks Exit or input ends.
// Storage failures are reported and the menu is shown again.
func (c *Console) Run(ctx context.Context) error {
    items := c.menu()
    for {
        c.println(c.styles.title.Render("Coworking reservations"))
        for i, it := range items {
            c.printf("(%d) %s\n", i+1, it.label)
        }
        choice, err := c.askInt("Choose an option: ", 1, len(items))
        if err != nil {
            if errors.Is(err, errEOF) {
                return nil
            }
            return err
        }
        item := items[choice-1]
        if item.run == nil {
            c.println("Goodbye.")
            return nil
        }
        c.println(c.styles.heading.Render(item.label))
        if err := item.run(ctx); err != nil {
            if errors.Is(err, errEOF) {
                return nil
            }
            c.fail(err)
        }
        if err := ctx.Err(); err != nil {
            return err
        }
    }
}

func (c *Console) printf(format string, args ...any) { fmt.Fprintf(c.out, format, args...) }
func (c *Console) println(s string)                  { fmt.Fprintln(c.out, s) }

// fail prints err in the error style.
func (c *Console) fail(err error) {
    c.println(c.styles.errorText.Render("Error: " + err.Error()))
}

func (c *Console) ok(msg string) {
    c.println(c.styles.success.Render(msg))
}

// ask prints prompt and returns the trimmed answer.
func (c *Console) ask(prompt string) (string, error) {
    c.printf("%s", prompt)
    if !c.in.Scan() {
        if err := c.in.Err(); err != nil {
            return "", err
        }
        return "", errEOF
    }
    return strings.TrimSpace(c.in.Text()), nil
}

// askInt re-prompts until the answer is an integer within [lo, hi].
func (c *Console) askInt(prompt string, lo, hi int) (int, error) {
    for {
        raw, err := c.ask(prompt)
        if err != nil {
            return 0, err
        }
        n, err := strconv.Atoi(raw)
        if err != nil {
            c.println("Please type a whole number.")
            continue
        }
        if n < lo || n > hi {
            c.printf("Please choose a number between %d and %d.\n", lo, hi)
            continue
        }
        return n, nil
    }
}

// askDate re-prompts until a dd/mm/yyyy date is typed.
func (c *Console) askDate(prompt string) (model.Date, error) {
    for {
        raw, err := c.ask(prompt)
        if err != nil {
            return model.Date{}, err
        }
        d, err := utils.ParseUserDate(raw)
        if err != nil {
            c.println("Invalid format, please use dd/mm/yyyy.")
            continue
        }
        return d, nil
    }
}

// askRange reads a start and end date, re-prompting while start > end.
func (c *Console) askRange() (model.Date, model.Date, error) {
    for {
        start, err := c.askDate("Start date of the range (dd/mm/yyyy): ")
        if err != nil {
            return model.Date{}, model.Date{}, err
        }
        end, err := c.askDate("End date of the range (dd/mm/yyyy): ")
        if err != nil {
            return model.Date{}, model.Date{}, err
        }
        if start.After(end) {
            c.println("The start date cannot be after the end date.")
            continue
        }
        return start, end, nil
    }
}

// askEventName re-prompts until the trimmed name fits the length bounds.
func (c *Console) askEventName(prompt string) (string, error) {
    for {
        raw, err := c.ask(prompt)
        if err != nil {
            return "", err
        }
        if n := len([]rune(raw)); n < MinEventNameLen || n > model.MaxEventNameLen {
            c.printf("Please type a valid name (%d to %d characters).\n", MinEventNameLen, model.MaxEventNameLen)
            continue
        }
        return raw, nil
    }
}

// confirm returns true for y/yes in any case.
func (c *Console) confirm(prompt string) (bool, error) {
    raw, err := c.ask(prompt + " (y/n): ")
    if err != nil {
        return false, err
    }
    switch strings.ToLower(raw) {
    case "y", "yes":
        return true, nil
    }
    return false, nil
}

// giveUp asks whether to abandon the current operation after bad input.
func (c *Console) giveUp() (bool, error) {
    raw, err := c.ask("Type Q to return to the menu or press Enter to try again: ")
    if err != nil {
        return true, err
    }
    return strings.EqualFold(raw, "q"), nil
}
