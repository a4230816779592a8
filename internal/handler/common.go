// Package handler contains the HTTP handlers of the reservation API.
// Handlers translate the repository error kinds into status codes and
// always answer errors with an {"error": "..."} body.
package handler

import (
    "errors"
    "log/slog"
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coworking-reservation/internal/model"
    "github.com/iliyamo/coworking-reservation/internal/repository"
    "github.com/iliyamo/coworking-reservation/internal/utils"
    "github.com/iliyamo/coworking-reservation/internal/validate"
)

// writeError maps an error to its status code: validation 400, conflict
// 409, not found 404 and anything else 500.  Storage failures are not
// echoed to the client.
func writeError(c echo.Context, err error) error {
    switch {
    case errors.Is(err, repository.ErrValidation):
        return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrConflict):
        return c.JSON(http.StatusConflict, echo.Map{"error": err.Error()})
    case errors.Is(err, repository.ErrNotFound):
        return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
    }
    slog.ErrorContext(c.Request().Context(), "request failed", "method", c.Request().Method, "path", c.Path(), "err", err)
    return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
}

func badRequest(c echo.Context, msg string) error {
    return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
}

// bindValid binds the request body into dst and runs struct validation.
func bindValid(c echo.Context, dst any) error {
    if err := c.Bind(dst); err != nil {
        return errors.New("invalid request body")
    }
    return validate.Struct(dst)
}

// dateParam parses a date from a query or path value; both YYYY-MM-DD
// and dd/mm/yyyy are accepted.
func dateParam(raw, name string) (model.Date, error) {
    if strings.TrimSpace(raw) == "" {
        return model.Date{}, repository.Detail(repository.ErrInvalidDate, "%s is required", name)
    }
    d, err := utils.ParseUserDate(raw)
    if err != nil {
        return model.Date{}, repository.Detail(repository.ErrInvalidDate, "%s: %v", name, err)
    }
    return d, nil
}

// idParam parses a positive integer path parameter.
func idParam(c echo.Context, name string) (int64, bool) {
    id, err := utils.ParseID(c.Param(name))
    return id, err == nil
}
