package repository

import (
    "context"
    "errors"
    "fmt"
    "testing"

    "github.com/go-sql-driver/mysql"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/testutil"
)

func seed(t *testing.T, ctx context.Context, clients *ClientRepo, rooms *RoomRepo) (int64, int64) {
    t.Helper()
    c := &model.Client{Name: "Ana", Surname: "Ruiz"}
    if err := clients.Create(ctx, c); err != nil {
        t.Fatalf("create client: %v", err)
    }
    r := &model.Room{Name: "Sala uno", Capacity: 12}
    if err := rooms.Create(ctx, r); err != nil {
        t.Fatalf("create room: %v", err)
    }
    return c.ID, r.ID
}

func TestClientRepo(t *testing.T) {
    ctx := context.Background()
    repo := NewClientRepo(testutil.NewSQLite(t))

    for _, c := range []*model.Client{
        {Name: "  Zoe ", Surname: "Alba"},
        {Name: "Ana", Surname: "Ruiz"},
        {Name: "Luis", Surname: "Alba"},
    } {
        if err := repo.Create(ctx, c); err != nil {
            t.Fatalf("create %+v: %v", c, err)
        }
        if c.ID == 0 || c.CreatedAt.IsZero() {
            t.Fatalf("create did not populate id/created_at: %+v", c)
        }
    }

    list, err := repo.List(ctx)
    if err != nil {
        t.Fatalf("list: %v", err)
    }
    var got []string
    for _, c := range list {
        got = append(got, c.FullName())
    }
    want := []string{"Luis Alba", "Zoe Alba", "Ana Ruiz"}
    if fmt.Sprint(got) != fmt.Sprint(want) {
        t.Fatalf("order = %v, want %v", got, want)
    }

    err = repo.Create(ctx, &model.Client{Name: "R2D2", Surname: "Droid"})
    if !errors.Is(err, ErrInvalidClient) || !errors.Is(err, ErrValidation) {
        t.Fatalf("invalid name err = %v", err)
    }
    if _, err := repo.GetByID(ctx, 99); !errors.Is(err, ErrClientNotFound) {
        t.Fatalf("GetByID(99) err = %v", err)
    }
    if ok, err := repo.Exists(ctx, list[0].ID); err != nil || !ok {
        t.Fatalf("Exists = %v, %v", ok, err)
    }
}

func TestRoomRepo(t *testing.T) {
    ctx := context.Background()
    repo := NewRoomRepo(testutil.NewSQLite(t))

    if err := repo.Create(ctx, &model.Room{Name: "Sala", Capacity: 0}); !errors.Is(err, ErrInvalidRoom) {
        t.Fatalf("zero capacity err = %v", err)
    }
    r := &model.Room{Name: " Terraza ", Capacity: 40}
    if err := repo.Create(ctx, r); err != nil {
        t.Fatalf("create: %v", err)
    }
    got, err := repo.GetByID(ctx, r.ID)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if got.Name != "Terraza" || got.Capacity != 40 {
        t.Fatalf("stored room = %+v", got)
    }
    if ok, _ := repo.Exists(ctx, r.ID+1); ok {
        t.Fatal("Exists reported an unknown room")
    }
}

// The unique index rejects a second active row for a slot even when the
// pre-check is skipped, and accepts it again once the first is cancelled.
func TestCreateTxDuplicateSlot(t *testing.T) {
    ctx := context.Background()
    db := testutil.NewSQLite(t)
    clientID, roomID := seed(t, ctx, NewClientRepo(db), NewRoomRepo(db))
    repo := NewReservationRepo(db)
    day := model.NewDate(2099, 5, 8)

    insert := func() (*ReservationRecord, error) {
        tx, err := db.BeginTx(ctx, nil)
        if err != nil {
            t.Fatalf("begin: %v", err)
        }
        rec := &ReservationRecord{ClientID: clientID, RoomID: roomID, Date: day, Shift: model.ShiftNight, EventName: "Jam"}
        if err := repo.CreateTx(ctx, tx, rec); err != nil {
            _ = tx.Rollback()
            return nil, err
        }
        return rec, tx.Commit()
    }

    first, err := insert()
    if err != nil {
        t.Fatalf("first insert: %v", err)
    }
    if _, err := insert(); !errors.Is(err, ErrSlotTaken) || !errors.Is(err, ErrConflict) {
        t.Fatalf("second insert err = %v, want ErrSlotTaken", err)
    }

    tx, err := db.BeginTx(ctx, nil)
    if err != nil {
        t.Fatalf("begin: %v", err)
    }
    if err := repo.CancelTx(ctx, tx, first.Folio); err != nil {
        t.Fatalf("cancel: %v", err)
    }
    if err := repo.CancelTx(ctx, tx, first.Folio); !errors.Is(err, ErrAlreadyCancelled) {
        t.Fatalf("second cancel err = %v", err)
    }
    if err := tx.Commit(); err != nil {
        t.Fatalf("commit: %v", err)
    }

    second, err := insert()
    if err != nil {
        t.Fatalf("insert after cancel: %v", err)
    }
    if second.Folio <= first.Folio {
        t.Fatalf("folio %d not greater than %d", second.Folio, first.Folio)
    }

    old, err := repo.GetByFolio(ctx, first.Folio)
    if err != nil {
        t.Fatalf("get: %v", err)
    }
    if !old.Cancelled || !old.Date.Equal(day) || old.Shift != model.ShiftNight {
        t.Fatalf("cancelled row = %+v", old)
    }
    if _, err := repo.GetByFolio(ctx, 999); !errors.Is(err, ErrReservationNotFound) {
        t.Fatalf("unknown folio err = %v", err)
    }
}

func TestListsSkipCancelled(t *testing.T) {
    ctx := context.Background()
    db := testutil.NewSQLite(t)
    clientID, roomID := seed(t, ctx, NewClientRepo(db), NewRoomRepo(db))
    repo := NewReservationRepo(db)

    tx, err := db.BeginTx(ctx, nil)
    if err != nil {
        t.Fatalf("begin: %v", err)
    }
    var folios []int64
    for _, r := range []struct {
        day   int
        shift model.Shift
    }{{9, model.ShiftNight}, {8, model.ShiftMorning}, {8, model.ShiftAfternoon}, {12, model.ShiftMorning}} {
        rec := &ReservationRecord{ClientID: clientID, RoomID: roomID, Date: model.NewDate(2099, 5, r.day), Shift: r.shift, EventName: "E"}
        if err := repo.CreateTx(ctx, tx, rec); err != nil {
            t.Fatalf("create: %v", err)
        }
        folios = append(folios, rec.Folio)
    }
    if err := repo.CancelTx(ctx, tx, folios[2]); err != nil {
        t.Fatalf("cancel: %v", err)
    }
    if err := tx.Commit(); err != nil {
        t.Fatalf("commit: %v", err)
    }

    day, err := repo.ListByDate(ctx, model.NewDate(2099, 5, 8))
    if err != nil {
        t.Fatalf("by date: %v", err)
    }
    if len(day) != 1 || day[0].Folio != folios[1] || day[0].ClientName != "Ana Ruiz" || day[0].RoomName != "Sala uno" {
        t.Fatalf("by date = %+v", day)
    }

    rng, err := repo.ListByRange(ctx, model.NewDate(2099, 5, 8), model.NewDate(2099, 5, 9))
    if err != nil {
        t.Fatalf("by range: %v", err)
    }
    if len(rng) != 2 || rng[0].Folio != folios[1] || rng[1].Folio != folios[0] {
        t.Fatalf("by range = %+v", rng)
    }

    slots, err := repo.OccupiedSlots(ctx, model.NewDate(2099, 5, 8))
    if err != nil {
        t.Fatalf("occupied: %v", err)
    }
    if len(slots) != 1 || slots[0].Shift != model.ShiftMorning {
        t.Fatalf("occupied = %+v", slots)
    }
    taken, err := repo.SlotTaken(ctx, model.NewDate(2099, 5, 8), roomID, model.ShiftAfternoon)
    if err != nil || taken {
        t.Fatalf("cancelled slot reported taken: %v, %v", taken, err)
    }
}

func TestIsDuplicateKey(t *testing.T) {
    if !isDuplicateKey(fmt.Errorf("wrapped: %w", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})) {
        t.Fatal("mysql 1062 not recognised")
    }
    if isDuplicateKey(&mysql.MySQLError{Number: 1452}) {
        t.Fatal("foreign key error treated as duplicate")
    }
    if isDuplicateKey(errors.New("boom")) {
        t.Fatal("plain error treated as duplicate")
    }
}

func TestStorageWrapsKind(t *testing.T) {
    cause := errors.New("connection reset")
    err := Storage("list", cause)
    if !errors.Is(err, ErrStorage) || !errors.Is(err, cause) {
        t.Fatalf("Storage() = %v", err)
    }
    if Storage("noop", nil) != nil {
        t.Fatal("Storage(nil) should be nil")
    }
    d := Detail(ErrUnknownRoom, "room %d", 7)
    if !errors.Is(d, ErrUnknownRoom) || !errors.Is(d, ErrValidation) || d.Error() != "room does not exist: room 7" {
        t.Fatalf("Detail() = %v", d)
    }
}
