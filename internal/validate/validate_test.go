package validate

import (
    "strings"
    "testing"
)

type sample struct {
    Name    string `json:"name" validate:"required,min=2,max=5,alphaspace"`
    RoomID  int64  `json:"room_id" validate:"gt=0"`
    Comment string `validate:"max=3"`
}

func TestStruct(t *testing.T) {
    if err := Struct(sample{Name: "Ana M", RoomID: 1}); err != nil {
        t.Fatalf("valid struct rejected: %v", err)
    }

    tests := []struct {
        in   sample
        want string
    }{
        {sample{Name: "", RoomID: 1}, "name: is required"},
        {sample{Name: "A", RoomID: 1}, "name: must be at least 2 characters"},
        {sample{Name: "Ana Maria", RoomID: 1}, "name: must be at most 5 characters"},
        {sample{Name: "An4", RoomID: 1}, "name: must contain only letters and spaces"},
        {sample{Name: "Ana", RoomID: 0}, "room_id: must be greater than 0"},
        {sample{Name: "Ana", RoomID: 1, Comment: "long"}, "comment: must be at most 3 characters"},
    }
    for _, tt := range tests {
        err := Struct(tt.in)
        if err == nil || !strings.Contains(err.Error(), tt.want) {
            t.Errorf("Struct(%+v) = %v, want %q", tt.in, err, tt.want)
        }
    }
}

func TestAlphaspaceAcceptsAccents(t *testing.T) {
    if err := Struct(sample{Name: "José", RoomID: 1}); err != nil {
        t.Fatalf("accented name rejected: %v", err)
    }
}
