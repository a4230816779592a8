package middleware

import (
    "context"
    "log/slog"

    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"
)

// RequestLogger writes one structured access log record per request.
// Server errors are logged at error level with the handler's error.
func RequestLogger(log *slog.Logger) echo.MiddlewareFunc {
    return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
        LogMethod:    true,
        LogURI:       true,
        LogStatus:    true,
        LogLatency:   true,
        LogRemoteIP:  true,
        LogRequestID: true,
        LogError:     true,
        HandleError:  true,
        LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
            attrs := []slog.Attr{
                slog.String("method", v.Method),
                slog.String("uri", v.URI),
                slog.Int("status", v.Status),
                slog.Duration("latency", v.Latency),
                slog.String("remote_ip", v.RemoteIP),
            }
            if v.RequestID != "" {
                attrs = append(attrs, slog.String("request_id", v.RequestID))
            }
            level := slog.LevelInfo
            if v.Error != nil {
                attrs = append(attrs, slog.String("err", v.Error.Error()))
            }
            if v.Status >= 500 {
                level = slog.LevelError
            }
            log.LogAttrs(context.Background(), level, "request", attrs...)
            return nil
        },
    })
}
