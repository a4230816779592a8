package service

import (
    "context"

    "github.com/iliyamo/coworking-reservation/internal/model"
)

// RoomAvailability lists the shifts of one room that are still free on a date.
type RoomAvailability struct {
    RoomID   int64         `json:"room_id"`
    Name     string        `json:"name"`
    Capacity int           `json:"capacity"`
    Shifts   []model.Shift `json:"available_shifts"`
}

// IsAvailable reports whether no active reservation holds the slot.  It
// does not check that the room exists.
func (s *ReservationService) IsAvailable(ctx context.Context, date model.Date, roomID int64, shift model.Shift) (bool, error) {
    taken, err := s.reservations.SlotTaken(ctx, date, roomID, shift)
    if err != nil {
        return false, err
    }
    return !taken, nil
}

// AvailableRooms returns, for every registered room, the shifts with no
// active reservation on date.  Rooms keep registry order (by id), shifts
// keep catalog order, and fully booked rooms are left out.
func (s *ReservationService) AvailableRooms(ctx context.Context, date model.Date) ([]RoomAvailability, error) {
    rooms, err := s.rooms.List(ctx)
    if err != nil {
        return nil, err
    }
    occupied, err := s.reservations.OccupiedSlots(ctx, date)
    if err != nil {
        return nil, err
    }
    taken := make(map[int64]map[model.Shift]bool, len(occupied))
    for _, slot := range occupied {
        if taken[slot.RoomID] == nil {
            taken[slot.RoomID] = make(map[model.Shift]bool)
        }
        taken[slot.RoomID][slot.Shift] = true
    }
    out := make([]RoomAvailability, 0, len(rooms))
    for _, room := range rooms {
        var free []model.Shift
        for _, shift := range model.Shifts() {
            if !taken[room.ID][shift] {
                free = append(free, shift)
            }
        }
        if len(free) == 0 {
            continue
        }
        out = append(out, RoomAvailability{
            RoomID:   room.ID,
            Name:     room.Name,
            Capacity: room.Capacity,
            Shifts:   free,
        })
    }
    return out, nil
}
