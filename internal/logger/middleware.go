package logger

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
)

// ContextMiddleware stores a request scoped logger in the request context.
// It must run after the RequestID middleware.
func ContextMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			ctx := WithLogger(req.Context(), map[string]interface{}{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     req.Method,
				"path":       req.URL.Path,
			})
			c.SetRequest(req.WithContext(ctx))
			return next(c)
		}
	}
}

// RequestLogger logs one line per request through zerolog.
func RequestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogURI:       true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zerolog.InfoLevel
			if v.Status >= 500 {
				level = zerolog.ErrorLevel
			}
			e := Event(c.Request().Context(), level).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency)
			if v.Error != nil {
				e = e.Err(v.Error)
			}
			e.Msg("request")
			return nil
		},
	})
}
