package logger

import (
	"fmt"

	"destination-sync/core/fault"
	"destination-sync/core/middleware/rayid"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a zap logger. Debug level uses the development preset
// (ISO8601 timestamps, caller info); every other level the production one.
func New(cfg *Config) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Level == "debug" {
		zc = zap.NewDevelopmentConfig()
	}

	if cfg.Level != "" {
		level, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	switch cfg.Format {
	case "console":
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zc.DisableStacktrace = true
	case "", "json":
		zc.Encoding = "json"
	default:
		return nil, fmt.Errorf("invalid log format %q (expected json or console)", cfg.Format)
	}

	zc.EncoderConfig.LevelKey = "level"
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.MessageKey = "message"

	return zc.Build()
}

// WithRayID returns a logger carrying the request's ray id, if any.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if id, ok := c.Locals(rayid.LocalsKey).(string); ok && id != "" {
		return l.With(zap.String("ray_id", id))
	}
	return l
}

// WithScope returns a logger tagged with the calling configuration's scope id.
func WithScope(l *zap.Logger, scopeID string) *zap.Logger {
	if scopeID == "" {
		return l
	}
	return l.With(zap.String("scope_id", scopeID))
}

// WithDestination returns a logger tagged with a destination name.
func WithDestination(l *zap.Logger, name string) *zap.Logger {
	return l.With(zap.String("destination", name))
}

// FaultFields describes err for a log entry: its outcome label and, for a
// fault, the code and remote status.
func FaultFields(err error) []zap.Field {
	fields := []zap.Field{zap.String("outcome", fault.Label(err)), zap.Error(err)}
	if f := fault.As(err); f != nil {
		fields = append(fields, zap.String("code", f.Code), zap.Int("remote_status", f.Status))
	}
	return fields
}
