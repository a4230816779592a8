package model

import "time"

// Room is a bookable space.  Capacity is informational only; the engine
// never compares it against attendance.
type Room struct {
    ID        int64     `json:"id"`                                   // rooms.id
    Name      string    `json:"name" validate:"required,min=2,max=100"` // rooms.name
    Capacity  int       `json:"capacity" validate:"min=1,max=1000"`   // rooms.capacity
    CreatedAt time.Time `json:"created_at"`                           // rooms.created_at
}
