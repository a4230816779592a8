package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/coworking-reservation/internal/model"
)

// ReservationRepo provides the persistence operations behind the
// reservation engine.  Mutating operations are *Tx methods and run inside
// a transaction owned by the caller; reads run directly on the pool.
//
// The slot invariant is enforced by the unique index
// uq_reservations_active_slot over (reserved_on, room_id, shift,
// active_slot).  Active rows carry active_slot = 1 and cancelled rows
// carry NULL, which never collides, so cancelling a reservation frees its
// slot at the storage level as well.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so the service layer can open the
// short-lived transaction each engine operation runs in.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

// ReservationRecord mirrors the columns written on insert.  Folio is
// populated by CreateTx.
type ReservationRecord struct {
    Folio     int64
    ClientID  int64
    RoomID    int64
    Date      model.Date
    Shift     model.Shift
    EventName string
}

// ReservationDetail is a reservation joined with the display names of its
// client and room.  It is the row shape returned by the query layer and
// consumed by reports and exports.
type ReservationDetail struct {
    Folio      int64       `json:"folio" yaml:"folio"`
    Date       model.Date  `json:"date" yaml:"date"`
    Shift      model.Shift `json:"shift" yaml:"shift"`
    RoomID     int64       `json:"room_id" yaml:"room_id"`
    RoomName   string      `json:"room_name" yaml:"room_name"`
    ClientID   int64       `json:"client_id" yaml:"client_id"`
    ClientName string      `json:"client_name" yaml:"client_name"`
    EventName  string      `json:"event_name" yaml:"event_name"`
}

// activeOnly treats a NULL cancelled column as not cancelled.
const activeOnly = `COALESCE(r.cancelled, 0) = 0`

const detailColumns = `r.folio, r.reserved_on, r.shift, r.room_id, ro.name,
                       r.client_id, c.name, c.surname, r.event_name`

const detailFrom = `FROM reservations r
                    JOIN rooms ro ON ro.id = r.room_id
                    JOIN clients c ON c.id = r.client_id`

// SlotTaken reports whether an active reservation holds the slot.
func (r *ReservationRepo) SlotTaken(ctx context.Context, date model.Date, roomID int64, shift model.Shift) (bool, error) {
    return slotTaken(ctx, r.db, date, roomID, shift)
}

// SlotTakenTx is SlotTaken inside the caller's transaction.  The service
// calls it immediately before CreateTx so the check and the insert share
// one unit of work.
func (r *ReservationRepo) SlotTakenTx(ctx context.Context, tx *sql.Tx, date model.Date, roomID int64, shift model.Shift) (bool, error) {
    return slotTaken(ctx, tx, date, roomID, shift)
}

func slotTaken(ctx context.Context, q querier, date model.Date, roomID int64, shift model.Shift) (bool, error) {
    return exists(ctx, q,
        `SELECT 1 FROM reservations r
         WHERE r.reserved_on = ? AND r.room_id = ? AND r.shift = ? AND `+activeOnly+`
         LIMIT 1`,
        date, roomID, string(shift),
    )
}

// CreateTx inserts an active reservation and populates rec.Folio.  A
// unique-index violation on the slot is reported as ErrSlotTaken so a
// race lost between the pre-check and the insert still surfaces as a
// conflict.  The caller must commit or roll back.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, rec *ReservationRecord) error {
    const q = `INSERT INTO reservations (client_id, room_id, reserved_on, shift, event_name, cancelled, active_slot)
               VALUES (?, ?, ?, ?, ?, 0, 1)`
    res, err := tx.ExecContext(ctx, q, rec.ClientID, rec.RoomID, rec.Date, string(rec.Shift), rec.EventName)
    if err != nil {
        if isDuplicateKey(err) {
            return ErrSlotTaken
        }
        return storageErr("insert reservation", err)
    }
    folio, err := res.LastInsertId()
    if err != nil {
        return storageErr("insert reservation", err)
    }
    rec.Folio = folio
    return nil
}

// GetByFolioTx loads a reservation, cancelled or not.  It returns
// ErrReservationNotFound when the folio was never issued.
func (r *ReservationRepo) GetByFolioTx(ctx context.Context, tx *sql.Tx, folio int64) (*model.Reservation, error) {
    return getByFolio(ctx, tx, folio)
}

// GetByFolio is GetByFolioTx outside a transaction.
func (r *ReservationRepo) GetByFolio(ctx context.Context, folio int64) (*model.Reservation, error) {
    return getByFolio(ctx, r.db, folio)
}

func getByFolio(ctx context.Context, q querier, folio int64) (*model.Reservation, error) {
    const sel = `SELECT folio, client_id, room_id, reserved_on, shift, event_name, cancelled, created_at, updated_at
                 FROM reservations WHERE folio = ?`
    var res model.Reservation
    var shift string
    var cancelled sql.NullBool
    var created, updated timestamp
    err := q.QueryRowContext(ctx, sel, folio).Scan(
        &res.Folio, &res.ClientID, &res.RoomID, &res.Date, &shift, &res.EventName,
        &cancelled, &created, &updated,
    )
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrReservationNotFound
        }
        return nil, storageErr("get reservation", err)
    }
    res.Shift = model.Shift(shift)
    res.Cancelled = cancelled.Valid && cancelled.Bool
    res.CreatedAt = created.Time
    res.UpdatedAt = updated.Time
    return &res, nil
}

// RenameTx overwrites the event name.  Existence must be established by
// the caller (GetByFolioTx) because MySQL reports zero affected rows when
// the new value equals the old one.
func (r *ReservationRepo) RenameTx(ctx context.Context, tx *sql.Tx, folio int64, eventName string) error {
    const q = `UPDATE reservations SET event_name = ?, updated_at = CURRENT_TIMESTAMP WHERE folio = ?`
    if _, err := tx.ExecContext(ctx, q, eventName, folio); err != nil {
        return storageErr("rename reservation", err)
    }
    return nil
}

// CancelTx marks an active reservation cancelled and releases its slot.
// It returns ErrAlreadyCancelled when no active row matched; callers that
// need to tell "unknown" from "already cancelled" look the folio up first.
func (r *ReservationRepo) CancelTx(ctx context.Context, tx *sql.Tx, folio int64) error {
    const q = `UPDATE reservations
               SET cancelled = 1, active_slot = NULL, updated_at = CURRENT_TIMESTAMP
               WHERE folio = ? AND COALESCE(cancelled, 0) = 0`
    res, err := tx.ExecContext(ctx, q, folio)
    if err != nil {
        return storageErr("cancel reservation", err)
    }
    n, err := res.RowsAffected()
    if err != nil {
        return storageErr("cancel reservation", err)
    }
    if n == 0 {
        return ErrAlreadyCancelled
    }
    return nil
}

// OccupiedSlots returns the (room, shift) pairs held by active
// reservations on the given date, ordered by room then folio.
func (r *ReservationRepo) OccupiedSlots(ctx context.Context, date model.Date) ([]model.Slot, error) {
    const q = `SELECT r.room_id, r.shift FROM reservations r
               WHERE r.reserved_on = ? AND ` + activeOnly + `
               ORDER BY r.room_id, r.folio`
    rows, err := r.db.QueryContext(ctx, q, date)
    if err != nil {
        return nil, storageErr("occupied slots", err)
    }
    defer rows.Close()
    out := make([]model.Slot, 0)
    for rows.Next() {
        var roomID int64
        var shift string
        if err := rows.Scan(&roomID, &shift); err != nil {
            return nil, storageErr("occupied slots", err)
        }
        out = append(out, model.Slot{Date: date, RoomID: roomID, Shift: model.Shift(shift)})
    }
    if err := rows.Err(); err != nil {
        return nil, storageErr("occupied slots", err)
    }
    return out, nil
}

// ListByDate returns active reservations on the date ordered by folio.
func (r *ReservationRepo) ListByDate(ctx context.Context, date model.Date) ([]ReservationDetail, error) {
    q := `SELECT ` + detailColumns + ` ` + detailFrom + `
          WHERE r.reserved_on = ? AND ` + activeOnly + `
          ORDER BY r.folio`
    return r.listDetails(ctx, "list by date", q, date)
}

// ListByRange returns active reservations with start <= date <= end,
// ordered by date and then folio.  Range validation is the caller's job.
func (r *ReservationRepo) ListByRange(ctx context.Context, start, end model.Date) ([]ReservationDetail, error) {
    q := `SELECT ` + detailColumns + ` ` + detailFrom + `
          WHERE r.reserved_on BETWEEN ? AND ? AND ` + activeOnly + `
          ORDER BY r.reserved_on, r.folio`
    return r.listDetails(ctx, "list by range", q, start, end)
}

func (r *ReservationRepo) listDetails(ctx context.Context, op, q string, args ...any) ([]ReservationDetail, error) {
    rows, err := r.db.QueryContext(ctx, q, args...)
    if err != nil {
        return nil, storageErr(op, err)
    }
    defer rows.Close()
    details := make([]ReservationDetail, 0)
    for rows.Next() {
        var d ReservationDetail
        var shift, name, surname string
        if err := rows.Scan(
            &d.Folio, &d.Date, &shift, &d.RoomID, &d.RoomName,
            &d.ClientID, &name, &surname, &d.EventName,
        ); err != nil {
            return nil, storageErr(op, err)
        }
        d.Shift = model.Shift(shift)
        d.ClientName = strings.TrimSpace(name + " " + surname)
        details = append(details, d)
    }
    if err := rows.Err(); err != nil {
        return nil, storageErr(op, err)
    }
    return details, nil
}
