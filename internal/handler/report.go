package handler

import (
    "bytes"
    "net/http"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/coworking-reservation/internal/export"
)

// Export handles GET /v1/reports/:date/export?format=csv|json|yaml|xlsx.
// The format defaults to csv and the file is served as an attachment.
func (h *ReservationHandler) Export(c echo.Context) error {
    date, err := dateParam(c.Param("date"), "date")
    if err != nil {
        return writeError(c, err)
    }
    format := export.CSV
    if raw := c.QueryParam("format"); raw != "" {
        if format, err = export.ParseFormat(raw); err != nil {
            return badRequest(c, err.Error())
        }
    }
    details, err := h.Svc.ByDate(c.Request().Context(), date)
    if err != nil {
        return writeError(c, err)
    }
    var buf bytes.Buffer
    if err := export.Write(&buf, format, date, export.Rows(details)); err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "export failed"})
    }
    c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+format.FileName(date)+`"`)
    return c.Blob(http.StatusOK, format.ContentType(), buf.Bytes())
}
