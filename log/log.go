package log

import (
	"context"

	"github.com/on-the-ground/composable_go/internal/dispatch"
	"github.com/on-the-ground/composable_go/shared/helper"
	"go.uber.org/zap"
)

// LogLevel defines the severity level for log messages.
type LogLevel string

const (
	// LogInfo is used for general informational messages.
	LogInfo LogLevel = "info"

	// LogWarn is used for potentially harmful situations.
	LogWarn LogLevel = "warn"

	// LogError is used for error events that might still allow the application to continue running.
	LogError LogLevel = "error"

	// LogDebug is used for debugging messages with detailed internal information.
	LogDebug LogLevel = "debug"
)

// LogPayload is the payload structure for logging effect.
// It contains the log level, message string, and optional structured fields.
type LogPayload struct {
	Level   LogLevel
	Message string
	Fields  map[string]interface{}
}

func (lp LogPayload) PartitionKey() string {
	return "unpartitioned"
}

type effectEnum string

const effectLog effectEnum = "composable_go_effect_enum_log"

type logHandler = dispatch.FireAndForgetHandler[LogPayload]

// WithZapEffectHandler registers a fire-and-forget log effect handler using zap.Logger.
// Payloads are written by a single worker, so they reach the logger in the order they were performed.
// The teardown flushes pending payloads, syncs the logger and returns the parent context.
func WithZapEffectHandler(
	ctx context.Context,
	bufferSize int,
	logger *zap.Logger,
) (context.Context, func() context.Context) {
	handler := dispatch.NewFireAndForgetHandler(
		ctx,
		dispatch.NewConfig(bufferSize, 1),
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
			// stdout and stderr commonly refuse fsync; nothing to do about it here
			_ = logger.Sync()
		},
	)
	ctxWith := context.WithValue(ctx, effectLog, handler)

	return ctxWith, func() context.Context {
		handler.Close()
		return ctx
	}
}

// Effect performs a fire-and-forget log effect using the handler registered in ctx.
// Without a registered handler the payload is dropped.
func Effect(ctx context.Context, level LogLevel, msg string, fields map[string]interface{}) {
	handler, ok := helper.ContextValue[logHandler](ctx, effectLog)
	if !ok {
		return
	}
	// a cancelled caller still gets its last words logged
	_ = handler.Fire(context.WithoutCancel(ctx), LogPayload{
		Level:   level,
		Message: msg,
		Fields:  fields,
	})
}
