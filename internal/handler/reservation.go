package handler

import (
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
    "github.com/iliyamo/coworking-reservation/internal/service"
)

// ReservationHandler exposes the reservation engine over HTTP.
type ReservationHandler struct {
    Svc *service.ReservationService
}

// NewReservationHandler panics if svc is nil.
func NewReservationHandler(svc *service.ReservationService) *ReservationHandler {
    if svc == nil {
        panic("nil service passed to NewReservationHandler")
    }
    return &ReservationHandler{Svc: svc}
}

type createReservationRequest struct {
    ClientID  int64  `json:"client_id"`
    RoomID    int64  `json:"room_id"`
    Date      string `json:"date"`
    Shift     string `json:"shift"`
    EventName string `json:"event_name"`
}

// Create handles POST /v1/reservations.  With ?reschedule=next a date
// rejected for lead time or as a blackout day is moved to the next
// bookable day instead of failing.  Field checks are left to the engine
// so the first failing rule in its order is the one reported.
func (h *ReservationHandler) Create(c echo.Context) error {
    var body createReservationRequest
    if err := bindValid(c, &body); err != nil {
        return badRequest(c, err.Error())
    }
    var rescheduled bool
    switch c.QueryParam("reschedule") {
    case "next":
        rescheduled = true
    case "":
    default:
        return badRequest(c, "reschedule must be \"next\" when given")
    }
    // An unparsable date goes in as the zero date; the engine reports it
    // after the client and room checks and the parse error replaces it.
    date, dateErr := dateParam(body.Date, "date")
    in := service.CreateInput{
        ClientID:  body.ClientID,
        RoomID:    body.RoomID,
        Date:      date,
        Shift:     model.Shift(strings.ToUpper(strings.TrimSpace(body.Shift))),
        EventName: strings.TrimSpace(body.EventName),
    }

    ctx := c.Request().Context()
    booked := date
    var (
        folio int64
        err   error
    )
    if rescheduled {
        folio, booked, err = h.Svc.CreateRescheduled(ctx, in)
    } else {
        folio, err = h.Svc.Create(ctx, in)
    }
    if err != nil {
        if dateErr != nil && errors.Is(err, repository.ErrInvalidDate) {
            err = dateErr
        }
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, echo.Map{
        "folio":       folio,
        "date":        booked,
        "shift":       in.Shift,
        "room_id":     in.RoomID,
        "client_id":   in.ClientID,
        "event_name":  in.EventName,
        "rescheduled": !booked.Equal(date),
    })
}

// List handles GET /v1/reservations?date= for one day, or ?from=&to= for
// an inclusive range.  The range form also returns the folios in order.
func (h *ReservationHandler) List(c echo.Context) error {
    ctx := c.Request().Context()
    if raw := c.QueryParam("date"); raw != "" {
        date, err := dateParam(raw, "date")
        if err != nil {
            return writeError(c, err)
        }
        details, err := h.Svc.ByDate(ctx, date)
        if err != nil {
            return writeError(c, err)
        }
        return c.JSON(http.StatusOK, echo.Map{"date": date, "reservations": details})
    }

    from, err := dateParam(c.QueryParam("from"), "from")
    if err != nil {
        return writeError(c, err)
    }
    to, err := dateParam(c.QueryParam("to"), "to")
    if err != nil {
        return writeError(c, err)
    }
    details, folios, err := h.Svc.ByRange(ctx, from, to)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "from":         from,
        "to":           to,
        "reservations": details,
        "folios":       folios,
    })
}

// Rename handles PATCH /v1/reservations/:folio with {"event_name"}.
func (h *ReservationHandler) Rename(c echo.Context) error {
    folio, ok := idParam(c, "folio")
    if !ok {
        return badRequest(c, "invalid folio")
    }
    var body struct {
        EventName string `json:"event_name"`
    }
    if err := bindValid(c, &body); err != nil {
        return badRequest(c, err.Error())
    }
    name := strings.TrimSpace(body.EventName)
    if err := h.Svc.Rename(c.Request().Context(), folio, name); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"folio": folio, "event_name": name})
}

// Cancel handles DELETE /v1/reservations/:folio.  Cancelling twice is a
// 409; the reservation stays on record as cancelled.
func (h *ReservationHandler) Cancel(c echo.Context) error {
    folio, ok := idParam(c, "folio")
    if !ok {
        return badRequest(c, "invalid folio")
    }
    if err := h.Svc.Cancel(c.Request().Context(), folio); err != nil {
        return writeError(c, err)
    }
    return c.NoContent(http.StatusNoContent)
}

// Availability handles GET /v1/availability?date= and lists the rooms
// with at least one free shift.
func (h *ReservationHandler) Availability(c echo.Context) error {
    date, err := dateParam(c.QueryParam("date"), "date")
    if err != nil {
        return writeError(c, err)
    }
    rooms, err := h.Svc.AvailableRooms(c.Request().Context(), date)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":     date,
        "bookable": h.Svc.CheckDate(date) == nil,
        "rooms":    rooms,
    })
}

// CheckSlot handles GET /v1/availability/check?date=&room_id=&shift=.
func (h *ReservationHandler) CheckSlot(c echo.Context) error {
    date, err := dateParam(c.QueryParam("date"), "date")
    if err != nil {
        return writeError(c, err)
    }
    roomID, err := strconv.ParseInt(c.QueryParam("room_id"), 10, 64)
    if err != nil || roomID <= 0 {
        return badRequest(c, "invalid room_id")
    }
    shift, err := model.ParseShift(c.QueryParam("shift"))
    if err != nil {
        return writeError(c, repository.Detail(repository.ErrInvalidShift, "%v", err))
    }
    ok, err := h.Svc.IsAvailable(c.Request().Context(), date, roomID, shift)
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{
        "date":      date,
        "room_id":   roomID,
        "shift":     shift,
        "available": ok,
    })
}
