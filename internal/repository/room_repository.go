package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/validate"
)

// RoomRepo is the room registry consumed by the reservation engine.
type RoomRepo struct {
    db *sql.DB
}

// NewRoomRepo constructs a RoomRepo with the given DB handle.
func NewRoomRepo(db *sql.DB) *RoomRepo { return &RoomRepo{db: db} }

// Create inserts a room after trimming its name.  Names need at least two
// characters and capacity must be between 1 and 1000.
func (r *RoomRepo) Create(ctx context.Context, room *model.Room) error {
    room.Name = strings.TrimSpace(room.Name)
    if err := validate.Struct(room); err != nil {
        return Detail(ErrInvalidRoom, "%v", err)
    }
    const q = `INSERT INTO rooms (name, capacity) VALUES (?, ?)`
    res, err := r.db.ExecContext(ctx, q, room.Name, room.Capacity)
    if err != nil {
        return storageErr("insert room", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return storageErr("insert room", err)
    }
    room.ID = id
    got, err := r.GetByID(ctx, id)
    if err != nil {
        return err
    }
    room.CreatedAt = got.CreatedAt
    return nil
}

// GetByID returns ErrRoomNotFound when the room does not exist.
func (r *RoomRepo) GetByID(ctx context.Context, id int64) (*model.Room, error) {
    const q = `SELECT id, name, capacity, created_at FROM rooms WHERE id = ?`
    var room model.Room
    var created timestamp
    err := r.db.QueryRowContext(ctx, q, id).Scan(&room.ID, &room.Name, &room.Capacity, &created)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrRoomNotFound
        }
        return nil, storageErr("get room", err)
    }
    room.CreatedAt = created.Time
    return &room, nil
}

// Exists reports whether a room with the given id is registered.
func (r *RoomRepo) Exists(ctx context.Context, id int64) (bool, error) {
    return exists(ctx, r.db, `SELECT 1 FROM rooms WHERE id = ?`, id)
}

// List returns all rooms ordered by id.
func (r *RoomRepo) List(ctx context.Context) ([]model.Room, error) {
    const q = `SELECT id, name, capacity, created_at FROM rooms ORDER BY id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, storageErr("list rooms", err)
    }
    defer rows.Close()
    out := make([]model.Room, 0)
    for rows.Next() {
        var room model.Room
        var created timestamp
        if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &created); err != nil {
            return nil, storageErr("list rooms", err)
        }
        room.CreatedAt = created.Time
        out = append(out, room)
    }
    if err := rows.Err(); err != nil {
        return nil, storageErr("list rooms", err)
    }
    return out, nil
}
