package log

import (
	"context"

	"github.com/on-the-ground/viewstate/effects"
	effectmodel "github.com/on-the-ground/viewstate/effects/internal/model"
	"go.uber.org/zap"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that still allow the view to keep running.
	LogError LogLevel = "error"

	// LogDebug is used for state transitions of resources and effect queues.
	LogDebug LogLevel = "debug"
)

// LogPayload is the payload of the log effect.
type LogPayload struct {
	Level   LogLevel
	Message string
	Fields  map[string]any
}

// WithZapEffectHandler registers a fire-and-forget log effect handler backed by logger.
// The logger is synced when the returned teardown is called.
func WithZapEffectHandler(
	ctx context.Context,
	bufferSize int,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	return effects.WithFireAndForgetEffectHandler(
		ctx,
		bufferSize,
		effectmodel.EffectLog,
		func(ctx context.Context, payload LogPayload) {
			fields := make([]zap.Field, 0, len(payload.Fields))
			for k, v := range payload.Fields {
				fields = append(fields, zap.Any(k, v))
			}

			switch payload.Level {
			case LogInfo:
				logger.Info(payload.Message, fields...)
			case LogWarn:
				logger.Warn(payload.Message, fields...)
			case LogError:
				logger.Error(payload.Message, fields...)
			case LogDebug:
				logger.Debug(payload.Message, fields...)
			default:
				logger.Info(payload.Message, fields...)
			}
		},
		func() {
			// stdout/stderr syncs return EINVAL on some platforms; nothing to do about it.
			_ = logger.Sync()
		},
	)
}

// Effect emits a structured log line through the log handler in ctx.
// Without a log handler the line is dropped.
func Effect(ctx context.Context, level LogLevel, msg string, fields map[string]any) {
	if !effects.HasHandler(ctx, effectmodel.EffectLog) {
		return
	}
	effects.FireAndForgetEffect(ctx, effectmodel.EffectLog, LogPayload{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
}
