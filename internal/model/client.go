package model

import "time"

// Client is a person allowed to book rooms.  Names are stored trimmed and
// must contain letters and spaces only.
type Client struct {
    ID        int64     `json:"id"`                                           // clients.id
    Name      string    `json:"name" validate:"required,min=2,max=50,alphaspace"`    // clients.name
    Surname   string    `json:"surname" validate:"required,min=2,max=50,alphaspace"` // clients.surname
    CreatedAt time.Time `json:"created_at"`                                   // clients.created_at
}

// FullName joins name and surname for reports.
func (c Client) FullName() string {
    if c.Surname == "" {
        return c.Name
    }
    return c.Name + " " + c.Surname
}
