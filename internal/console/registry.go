package console

import (
    "context"
    "errors"
    "fmt"
    "strconv"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

// registerClient re-prompts until the registry accepts the name.
func (c *Console) registerClient(ctx context.Context) error {
    for {
        name, err := c.ask("Name: ")
        if err != nil {
            return err
        }
        surname, err := c.ask("Surname: ")
        if err != nil {
            return err
        }
        client := &model.Client{Name: name, Surname: surname}
        err = c.clients.Create(ctx, client)
        if errors.Is(err, repository.ErrValidation) {
            c.fail(err)
            continue
        }
        if err != nil {
            return err
        }
        c.ok(fmt.Sprintf("Client registered with ID %d.", client.ID))
        return nil
    }
}

// registerRoom re-prompts until a name of two or more characters and a
// capacity between 1 and 1000 are given.
func (c *Console) registerRoom(ctx context.Context) error {
    for {
        name, err := c.ask("Room name: ")
        if err != nil {
            return err
        }
        if len([]rune(name)) < 2 {
            c.println("The room name must have at least 2 characters.")
            continue
        }
        raw, err := c.ask("Capacity: ")
        if err != nil {
            return err
        }
        capacity, perr := strconv.Atoi(raw)
        if perr != nil {
            c.println("Invalid value.")
            continue
        }
        room := &model.Room{Name: name, Capacity: capacity}
        err = c.rooms.Create(ctx, room)
        if errors.Is(err, repository.ErrValidation) {
            c.fail(err)
            continue
        }
        if err != nil {
            return err
        }
        c.ok(fmt.Sprintf("Room registered with ID %d.", room.ID))
        rooms, err := c.rooms.List(ctx)
        if err != nil {
            return err
        }
        c.printTable(c.roomTable(rooms))
        return nil
    }
}
