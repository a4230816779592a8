package handler_test

import (
    "encoding/json"
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coworking-reservation/internal/handler"
    "github.com/iliyamo/coworking-reservation/internal/logging"
    "github.com/iliyamo/coworking-reservation/internal/repository"
    "github.com/iliyamo/coworking-reservation/internal/router"
    "github.com/iliyamo/coworking-reservation/internal/service"
    "github.com/iliyamo/coworking-reservation/internal/testutil"
)

// newServer wires the API on SQLite with the clock on Friday 2099-05-01.
func newServer(t *testing.T) *echo.Echo {
    t.Helper()
    db := testutil.NewSQLite(t)
    clients := repository.NewClientRepo(db)
    rooms := repository.NewRoomRepo(db)
    policy := service.DefaultPolicy()
    policy.Location = time.UTC
    svc := service.NewReservationService(clients, rooms, repository.NewReservationRepo(db),
        service.WithClock(testutil.FixedClock{T: time.Date(2099, 5, 1, 9, 0, 0, 0, time.UTC)}),
        service.WithPolicy(policy),
        service.WithLogger(logging.Discard()),
        service.WithMinEventNameLen(3),
    )

    e := echo.New()
    router.RegisterRoutes(e, db)
    v1 := e.Group("/v1")
    router.RegisterRegistry(v1, handler.NewRegistryHandler(clients, rooms))
    router.RegisterReservations(v1, handler.NewReservationHandler(svc))
    return e
}

func call(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
    t.Helper()
    var req *http.Request
    if body == "" {
        req = httptest.NewRequest(method, target, nil)
    } else {
        req = httptest.NewRequest(method, target, strings.NewReader(body))
        req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    }
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)
    return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
    t.Helper()
    var out map[string]any
    if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
        t.Fatalf("decode %q: %v", rec.Body.String(), err)
    }
    return out
}

func expect(t *testing.T, rec *httptest.ResponseRecorder, status int) map[string]any {
    t.Helper()
    if rec.Code != status {
        t.Fatalf("status = %d, want %d; body %s", rec.Code, status, rec.Body.String())
    }
    if rec.Body.Len() == 0 || !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
        return nil
    }
    return decode(t, rec)
}

// seed registers one client and one room, both with id 1.
func seed(t *testing.T, e *echo.Echo) {
    t.Helper()
    expect(t, call(t, e, http.MethodPost, "/v1/clients", `{"name":"Manuel","surname":"Garza"}`), http.StatusCreated)
    expect(t, call(t, e, http.MethodPost, "/v1/rooms", `{"name":"Sala uno","capacity":20}`), http.StatusCreated)
}

const booking = `{"client_id":1,"room_id":1,"date":"2099-05-08","shift":"morning","event_name":"Demo day"}`

func TestHealth(t *testing.T) {
    e := newServer(t)
    rec := call(t, e, http.MethodGet, "/healthz", "")
    if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
        t.Fatalf("healthz = %d %q", rec.Code, rec.Body.String())
    }
}

func TestRegistry(t *testing.T) {
    e := newServer(t)
    got := expect(t, call(t, e, http.MethodPost, "/v1/clients", `{"name":"  Ana ","surname":"Ruiz"}`), http.StatusCreated)
    if got["name"] != "Ana" || got["id"] != float64(1) {
        t.Fatalf("created client = %v", got)
    }
    expect(t, call(t, e, http.MethodPost, "/v1/clients", `{"name":"Zoe","surname":"Abad"}`), http.StatusCreated)
    bad := expect(t, call(t, e, http.MethodPost, "/v1/clients", `{"name":"R2D2","surname":"Droid"}`), http.StatusBadRequest)
    if !strings.Contains(bad["error"].(string), "letters") {
        t.Fatalf("error = %v", bad["error"])
    }

    list := expect(t, call(t, e, http.MethodGet, "/v1/clients", ""), http.StatusOK)
    clients := list["clients"].([]any)
    if len(clients) != 2 || clients[0].(map[string]any)["surname"] != "Abad" {
        t.Fatalf("clients not ordered by surname: %v", clients)
    }

    expect(t, call(t, e, http.MethodPost, "/v1/rooms", `{"name":"Sala uno","capacity":0}`), http.StatusBadRequest)
    expect(t, call(t, e, http.MethodPost, "/v1/rooms", `{"name":"Sala uno","capacity":12}`), http.StatusCreated)
    rooms := expect(t, call(t, e, http.MethodGet, "/v1/rooms", ""), http.StatusOK)["rooms"].([]any)
    if len(rooms) != 1 {
        t.Fatalf("rooms = %v", rooms)
    }
}

func TestReservationLifecycle(t *testing.T) {
    e := newServer(t)
    seed(t, e)

    created := expect(t, call(t, e, http.MethodPost, "/v1/reservations", booking), http.StatusCreated)
    if created["folio"] != float64(1) || created["shift"] != "MORNING" || created["rescheduled"] != false {
        t.Fatalf("created = %v", created)
    }
    expect(t, call(t, e, http.MethodPost, "/v1/reservations", booking), http.StatusConflict)

    check := expect(t, call(t, e, http.MethodGet, "/v1/availability/check?date=2099-05-08&room_id=1&shift=MORNING", ""), http.StatusOK)
    if check["available"] != false {
        t.Fatalf("check = %v", check)
    }

    renamed := expect(t, call(t, e, http.MethodPatch, "/v1/reservations/1", `{"event_name":"  Launch "}`), http.StatusOK)
    if renamed["event_name"] != "Launch" {
        t.Fatalf("renamed = %v", renamed)
    }
    expect(t, call(t, e, http.MethodPatch, "/v1/reservations/9", `{"event_name":"Launch"}`), http.StatusNotFound)
    expect(t, call(t, e, http.MethodPatch, "/v1/reservations/1", `{"event_name":"ab"}`), http.StatusBadRequest)
    expect(t, call(t, e, http.MethodPatch, "/v1/reservations/x", `{"event_name":"Launch"}`), http.StatusBadRequest)

    byDate := expect(t, call(t, e, http.MethodGet, "/v1/reservations?date=08/05/2099", ""), http.StatusOK)
    list := byDate["reservations"].([]any)
    if len(list) != 1 {
        t.Fatalf("by date = %v", byDate)
    }
    first := list[0].(map[string]any)
    if first["client_name"] != "Manuel Garza" || first["room_name"] != "Sala uno" || first["event_name"] != "Launch" {
        t.Fatalf("detail = %v", first)
    }

    expect(t, call(t, e, http.MethodDelete, "/v1/reservations/1", ""), http.StatusNoContent)
    expect(t, call(t, e, http.MethodDelete, "/v1/reservations/1", ""), http.StatusConflict)
    expect(t, call(t, e, http.MethodDelete, "/v1/reservations/5", ""), http.StatusNotFound)

    again := expect(t, call(t, e, http.MethodPost, "/v1/reservations", booking), http.StatusCreated)
    if again["folio"] != float64(2) {
        t.Fatalf("folio after cancel = %v", again["folio"])
    }
}

func TestCreateValidation(t *testing.T) {
    e := newServer(t)
    seed(t, e)

    // The first rule to fail, in the engine's order, is the one reported.
    tests := []struct {
        name    string
        body    string
        wantErr string
    }{
        {"unknown client", `{"client_id":9,"room_id":1,"date":"2099-05-08","shift":"NIGHT","event_name":"Demo"}`, "client does not exist"},
        {"missing client", `{"room_id":1,"date":"2099-05-08","shift":"NIGHT","event_name":"Demo"}`, "client does not exist"},
        {"unknown client with empty name", `{"client_id":9,"room_id":1,"date":"2099-05-08","shift":"NIGHT","event_name":""}`, "client does not exist"},
        {"unknown client with bad date", `{"client_id":9,"room_id":1,"date":"tomorrow","shift":"NIGHT","event_name":""}`, "client does not exist"},
        {"unknown room", `{"client_id":1,"room_id":4,"date":"2099-05-08","shift":"NIGHT","event_name":"Demo"}`, "room does not exist"},
        {"lead time", `{"client_id":1,"room_id":1,"date":"2099-05-02","shift":"NIGHT","event_name":"Demo"}`, "minimum lead time"},
        {"sunday", `{"client_id":1,"room_id":1,"date":"2099-05-10","shift":"NIGHT","event_name":"Demo"}`, "not accepted on this day"},
        {"bad shift", `{"client_id":1,"room_id":1,"date":"2099-05-08","shift":"BRUNCH","event_name":""}`, "shift must be"},
        {"empty name", `{"client_id":1,"room_id":1,"date":"2099-05-08","shift":"NIGHT","event_name":"  "}`, "must not be empty"},
        {"short name", `{"client_id":1,"room_id":1,"date":"2099-05-08","shift":"NIGHT","event_name":" ab "}`, "event name length"},
        {"long name", `{"client_id":1,"room_id":1,"date":"2099-05-08","shift":"NIGHT","event_name":"` + strings.Repeat("n", 201) + `"}`, "event name length"},
        {"bad date", `{"client_id":1,"room_id":1,"date":"tomorrow","shift":"NIGHT","event_name":""}`, "invalid date"},
        {"bad date rescheduled", `{"client_id":1,"room_id":1,"date":"","shift":"NIGHT","event_name":"Demo"}`, "date is required"},
        {"not json", `{`, "invalid request body"},
    }
    for _, tt := range tests {
        t.Run(tt.name, func(t *testing.T) {
            target := "/v1/reservations"
            if strings.HasSuffix(tt.name, "rescheduled") {
                target += "?reschedule=next"
            }
            body := expect(t, call(t, e, http.MethodPost, target, tt.body), http.StatusBadRequest)
            msg, _ := body["error"].(string)
            if !strings.Contains(msg, tt.wantErr) {
                t.Fatalf("error = %q, want it to mention %q", msg, tt.wantErr)
            }
        })
    }
}

func TestCreateRescheduleNext(t *testing.T) {
    e := newServer(t)
    seed(t, e)
    body := `{"client_id":1,"room_id":1,"date":"2099-05-10","shift":"NIGHT","event_name":"Sunday party"}`
    got := expect(t, call(t, e, http.MethodPost, "/v1/reservations?reschedule=next", body), http.StatusCreated)
    if got["date"] != "2099-05-11" || got["rescheduled"] != true {
        t.Fatalf("rescheduled booking = %v", got)
    }
    expect(t, call(t, e, http.MethodPost, "/v1/reservations?reschedule=later", body), http.StatusBadRequest)
}

func TestListByRange(t *testing.T) {
    e := newServer(t)
    seed(t, e)
    for _, d := range []string{"2099-05-09", "2099-05-05", "2099-05-12"} {
        body := strings.Replace(booking, "2099-05-08", d, 1)
        expect(t, call(t, e, http.MethodPost, "/v1/reservations", body), http.StatusCreated)
    }
    got := expect(t, call(t, e, http.MethodGet, "/v1/reservations?from=2099-05-04&to=2099-05-09", ""), http.StatusOK)
    folios := got["folios"].([]any)
    if len(folios) != 2 || folios[0] != float64(2) || folios[1] != float64(1) {
        t.Fatalf("folios = %v", folios)
    }
    expect(t, call(t, e, http.MethodGet, "/v1/reservations?from=2099-05-09&to=2099-05-04", ""), http.StatusBadRequest)
    expect(t, call(t, e, http.MethodGet, "/v1/reservations", ""), http.StatusBadRequest)
}

func TestAvailability(t *testing.T) {
    e := newServer(t)
    seed(t, e)
    expect(t, call(t, e, http.MethodPost, "/v1/reservations", booking), http.StatusCreated)

    got := expect(t, call(t, e, http.MethodGet, "/v1/availability?date=2099-05-08", ""), http.StatusOK)
    rooms := got["rooms"].([]any)
    if len(rooms) != 1 || got["bookable"] != true {
        t.Fatalf("availability = %v", got)
    }
    shifts := rooms[0].(map[string]any)["available_shifts"].([]any)
    if len(shifts) != 2 || shifts[0] != "AFTERNOON" || shifts[1] != "NIGHT" {
        t.Fatalf("shifts = %v", shifts)
    }
    sunday := expect(t, call(t, e, http.MethodGet, "/v1/availability?date=2099-05-10", ""), http.StatusOK)
    if sunday["bookable"] != false {
        t.Fatalf("sunday availability = %v", sunday)
    }
    expect(t, call(t, e, http.MethodGet, "/v1/availability/check?date=2099-05-08&room_id=1&shift=brunch", ""), http.StatusBadRequest)
    expect(t, call(t, e, http.MethodGet, "/v1/availability/check?date=2099-05-08&room_id=x&shift=night", ""), http.StatusBadRequest)
}

func TestExport(t *testing.T) {
    e := newServer(t)
    seed(t, e)
    expect(t, call(t, e, http.MethodPost, "/v1/reservations", booking), http.StatusCreated)

    rec := call(t, e, http.MethodGet, "/v1/reports/2099-05-08/export", "")
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d", rec.Code)
    }
    if !strings.HasPrefix(rec.Header().Get(echo.HeaderContentType), "text/csv") {
        t.Fatalf("content type = %q", rec.Header().Get(echo.HeaderContentType))
    }
    if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), "reservations_2099-05-08.csv") {
        t.Fatalf("disposition = %q", rec.Header().Get(echo.HeaderContentDisposition))
    }
    want := "Folio,Room,Client,Event,Shift\n1,Sala uno,Manuel Garza,Demo day,Morning\n"
    if rec.Body.String() != want {
        t.Fatalf("csv = %q", rec.Body.String())
    }

    xlsx := call(t, e, http.MethodGet, "/v1/reports/2099-05-08/export?format=xlsx", "")
    if xlsx.Code != http.StatusOK || !strings.Contains(xlsx.Header().Get(echo.HeaderContentType), "spreadsheetml") {
        t.Fatalf("xlsx = %d %q", xlsx.Code, xlsx.Header().Get(echo.HeaderContentType))
    }
    expect(t, call(t, e, http.MethodGet, "/v1/reports/2099-05-08/export?format=pdf", ""), http.StatusBadRequest)
    expect(t, call(t, e, http.MethodGet, "/v1/reports/someday/export", ""), http.StatusBadRequest)
}
