package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/validate"
)

// ClientRepo is the client registry.  The reservation engine only asks it
// whether an id exists; registration and listing serve the console and
// HTTP front ends.
type ClientRepo struct {
    db *sql.DB
}

// NewClientRepo returns a ClientRepo bound to the given database.
func NewClientRepo(db *sql.DB) *ClientRepo { return &ClientRepo{db: db} }

// Create trims and validates the client, inserts it and populates ID and
// CreatedAt.  Invalid input yields an error wrapping ErrInvalidClient.
func (r *ClientRepo) Create(ctx context.Context, c *model.Client) error {
    c.Name = strings.TrimSpace(c.Name)
    c.Surname = strings.TrimSpace(c.Surname)
    if err := validate.Struct(c); err != nil {
        return Detail(ErrInvalidClient, "%v", err)
    }
    const q = `INSERT INTO clients (name, surname) VALUES (?, ?)`
    res, err := r.db.ExecContext(ctx, q, c.Name, c.Surname)
    if err != nil {
        return storageErr("insert client", err)
    }
    id, err := res.LastInsertId()
    if err != nil {
        return storageErr("insert client", err)
    }
    c.ID = id
    // Read back the defaulted timestamp.
    got, err := r.GetByID(ctx, id)
    if err != nil {
        return err
    }
    c.CreatedAt = got.CreatedAt
    return nil
}

// GetByID returns ErrClientNotFound when no client has the given id.
func (r *ClientRepo) GetByID(ctx context.Context, id int64) (*model.Client, error) {
    const q = `SELECT id, name, surname, created_at FROM clients WHERE id = ?`
    var c model.Client
    var created timestamp
    err := r.db.QueryRowContext(ctx, q, id).Scan(&c.ID, &c.Name, &c.Surname, &created)
    if err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return nil, ErrClientNotFound
        }
        return nil, storageErr("get client", err)
    }
    c.CreatedAt = created.Time
    return &c, nil
}

// Exists reports whether a client with the given id is registered.
func (r *ClientRepo) Exists(ctx context.Context, id int64) (bool, error) {
    return exists(ctx, r.db, `SELECT 1 FROM clients WHERE id = ?`, id)
}

// List returns every client ordered by surname, then name, then id.
func (r *ClientRepo) List(ctx context.Context) ([]model.Client, error) {
    const q = `SELECT id, name, surname, created_at FROM clients ORDER BY surname, name, id`
    rows, err := r.db.QueryContext(ctx, q)
    if err != nil {
        return nil, storageErr("list clients", err)
    }
    defer rows.Close()
    out := make([]model.Client, 0)
    for rows.Next() {
        var c model.Client
        var created timestamp
        if err := rows.Scan(&c.ID, &c.Name, &c.Surname, &created); err != nil {
            return nil, storageErr("list clients", err)
        }
        c.CreatedAt = created.Time
        out = append(out, c)
    }
    if err := rows.Err(); err != nil {
        return nil, storageErr("list clients", err)
    }
    return out, nil
}

// exists runs a single-row probe query and reports whether it matched.
func exists(ctx context.Context, q querier, query string, args ...any) (bool, error) {
    var one int
    err := q.QueryRowContext(ctx, query, args...).Scan(&one)
    if errors.Is(err, sql.ErrNoRows) {
        return false, nil
    }
    if err != nil {
        return false, storageErr("exists", err)
    }
    return true, nil
}
