package log

import (
	"context"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const testBufferSize = 64

// NewConsoleLogger builds a human readable logger writing to w.
func NewConsoleLogger(w zapcore.WriteSyncer, level zapcore.LevelEnabler) *zap.Logger {
	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.RFC3339NanoTimeEncoder
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(w),
		level,
	))
}

// WithTestEffectHandler installs a debug-level console logger on stdout.
func WithTestEffectHandler(
	ctx context.Context,
) (context.Context, func() context.Context) {
	return WithZapEffectHandler(ctx, testBufferSize, NewConsoleLogger(os.Stdout, zap.DebugLevel))
}
