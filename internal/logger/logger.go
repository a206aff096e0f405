package logger

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const EnvVar = "ETF_OVERLAP_ENV"

func New() *zap.SugaredLogger {
	var (
		logger *zap.Logger
		err    error
	)
	opts := []zap.Option{
		zap.AddStacktrace(zap.ErrorLevel),
	}

	env := os.Getenv(EnvVar)
	if strings.EqualFold(env, "dev") || strings.EqualFold(env, "test") {
		logger, err = zap.NewDevelopment(opts...)
	} else {
		opts = append(opts, zap.Fields(zap.Field{
			Key:    EnvVar,
			Type:   zapcore.StringType,
			String: env,
		}))
		logger, err = zap.NewProduction(opts...)
	}

	if err != nil {
		panic(fmt.Errorf("failed to initialize logger: %w", err))
	}

	return logger.Sugar()
}

// Nop discards everything. Used by tests and the cli's --json mode.
func Nop() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

const ContextKey = "LOGGER"

func WithLogger(ctx context.Context, lg *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, ContextKey, lg)
}

func FromContext(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if lg, ok := ctx.Value(ContextKey).(*zap.SugaredLogger); ok && lg != nil {
			return lg
		}
	}
	return zap.S()
}

func init() {
	logger := New()
	zap.ReplaceGlobals(logger.Desugar())
}
