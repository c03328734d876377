package logger

import (
	"context"
	"fmt"
	"os"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type StdoutLogger struct {
	logger *zap.Logger
}

func initStdoutLogger(serviceName string, level LogLevel) (Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.Level = zap.NewAtomicLevelAt(zapLevel(level))

	l, err := cfg.Build(zap.AddCallerSkip(2))
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	return &StdoutLogger{
		logger: l.With(zap.String("service", serviceName)),
	}, nil
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	fields := make([]zap.Field, 0, len(entry.Attributes)+3)
	for key, value := range entry.Attributes {
		fields = append(fields, zap.Any(key, value))
	}
	if entry.Error != nil {
		fields = append(fields, zap.Error(entry.Error))
	}
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		fields = append(fields, zap.String("trace_id", sc.TraceID().String()), zap.String("span_id", sc.SpanID().String()))
	}

	switch entry.Level {
	case LogLevelDebug:
		l.logger.Debug(entry.Message, fields...)
	case LogLevelInfo:
		l.logger.Info(entry.Message, fields...)
	case LogLevelWarn:
		l.logger.Warn(entry.Message, fields...)
	case LogLevelError:
		l.logger.Error(entry.Message, fields...)
	case LogLevelFatal:
		l.logger.Error(entry.Message, fields...)
		_ = l.logger.Sync()
		os.Exit(1)
	}
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	// stdout cannot be fsynced on most terminals; ignore that error
	_ = l.logger.Sync()
	return nil
}

func zapLevel(level LogLevel) zapcore.Level {
	switch level {
	case LogLevelInfo:
		return zapcore.InfoLevel
	case LogLevelWarn:
		return zapcore.WarnLevel
	case LogLevelError, LogLevelFatal:
		return zapcore.ErrorLevel
	default:
		return zapcore.DebugLevel
	}
}
