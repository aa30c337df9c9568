package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// skipPaths are probe endpoints that would otherwise drown the log.
var skipPaths = map[string]bool{
	"/health":       true,
	"/health/ready": true,
}

// RequestLogger emits one structured log line per request. Request
// errors are logged here but still returned so the error handler can
// shape the response.
func RequestLogger() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if skipPaths[c.Path()] {
				return next(c)
			}

			start := time.Now()
			err := next(c)

			fields := []zap.Field{
				zap.String("method", c.Request().Method),
				zap.String("path", c.Path()),
				zap.Int("status", c.Response().Status),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", c.RealIP()),
			}
			if err != nil {
				fields = append(fields, zap.Error(err))
				zap.L().Warn("request failed", fields...)
				return err
			}

			zap.L().Info("request", fields...)
			return nil
		}
	}
}
