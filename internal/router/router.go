// Package router defines how HTTP routes are registered for the API.
package router

import (
    "database/sql"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coworking-reservation/internal/handler"
)

// RegisterRoutes registers the health check, which stays outside /v1 so
// it is never cached or rate limited.
func RegisterRoutes(e *echo.Echo, db *sql.DB) {
    e.GET("/healthz", handler.Health(db))
}

// RegisterRegistry registers client and room registration under g.
func RegisterRegistry(g *echo.Group, h *handler.RegistryHandler) {
    g.POST("/clients", h.CreateClient)
    g.GET("/clients", h.ListClients)
    g.POST("/rooms", h.CreateRoom)
    g.GET("/rooms", h.ListRooms)
}

// RegisterReservations registers availability, the reservation
// lifecycle and the per-date export under g.
func RegisterReservations(g *echo.Group, h *handler.ReservationHandler) {
    g.GET("/availability", h.Availability)
    g.GET("/availability/check", h.CheckSlot)

    g.POST("/reservations", h.Create)
    g.GET("/reservations", h.List)
    g.PATCH("/reservations/:folio", h.Rename)
    g.DELETE("/reservations/:folio", h.Cancel)

    g.GET("/reports/:date/export", h.Export)
}
