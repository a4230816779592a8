package handler

import (
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
)

// RegistryHandler serves client and room registration.
type RegistryHandler struct {
    Clients *repository.ClientRepo
    Rooms   *repository.RoomRepo
}

// NewRegistryHandler panics if a repository is nil.
func NewRegistryHandler(clients *repository.ClientRepo, rooms *repository.RoomRepo) *RegistryHandler {
    if clients == nil || rooms == nil {
        panic("nil repository passed to NewRegistryHandler")
    }
    return &RegistryHandler{Clients: clients, Rooms: rooms}
}

// CreateClient handles POST /v1/clients with {"name", "surname"}.
// Names are trimmed and must be 2-50 letters or spaces.
func (h *RegistryHandler) CreateClient(c echo.Context) error {
    var body struct {
        Name    string `json:"name"`
        Surname string `json:"surname"`
    }
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid request body")
    }
    client := &model.Client{Name: body.Name, Surname: body.Surname}
    if err := h.Clients.Create(c.Request().Context(), client); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, client)
}

// ListClients handles GET /v1/clients, ordered by surname then name.
func (h *RegistryHandler) ListClients(c echo.Context) error {
    clients, err := h.Clients.List(c.Request().Context())
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"clients": clients})
}

// CreateRoom handles POST /v1/rooms with {"name", "capacity"}.
func (h *RegistryHandler) CreateRoom(c echo.Context) error {
    var body struct {
        Name     string `json:"name"`
        Capacity int    `json:"capacity"`
    }
    if err := c.Bind(&body); err != nil {
        return badRequest(c, "invalid request body")
    }
    room := &model.Room{Name: body.Name, Capacity: body.Capacity}
    if err := h.Rooms.Create(c.Request().Context(), room); err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusCreated, room)
}

// ListRooms handles GET /v1/rooms in id order.
func (h *RegistryHandler) ListRooms(c echo.Context) error {
    rooms, err := h.Rooms.List(c.Request().Context())
    if err != nil {
        return writeError(c, err)
    }
    return c.JSON(http.StatusOK, echo.Map{"rooms": rooms})
}
