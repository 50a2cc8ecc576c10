// Package logger предоставляет единый интерфейс логирования для всех слоёв приложения.
package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger - интерфейс логгера, который используют usecase, репозитории и транспорт.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(err error, format string, args ...any)
	Sync() error
}

// ZapLogger реализует Logger поверх zap.SugaredLogger.
type ZapLogger struct {
	log *zap.SugaredLogger
}

// NewZapLogger создаёт production-логгер с заданным уровнем ("debug", "info", "warn", "error").
// При некорректном уровне используется info.
func NewZapLogger(level string) (*ZapLogger, error) {
	cfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return nil, fmt.Errorf("build zap logger: %w", err)
	}

	return &ZapLogger{log: l.Sugar()}, nil
}

// NewNopLogger возвращает логгер, который ничего не пишет. Используется в тестах.
func NewNopLogger() *ZapLogger {
	return &ZapLogger{log: zap.NewNop().Sugar()}
}

func (z *ZapLogger) Debugf(format string, args ...any) {
	z.log.Debugf(format, args...)
}

func (z *ZapLogger) Infof(format string, args ...any) {
	z.log.Infof(format, args...)
}

func (z *ZapLogger) Warnf(format string, args ...any) {
	z.log.Warnf(format, args...)
}

// Errorf пишет сообщение с прикреплённой ошибкой в поле "error".
func (z *ZapLogger) Errorf(err error, format string, args ...any) {
	z.log.With(zap.Error(err)).Errorf(format, args...)
}

func (z *ZapLogger) Sync() error {
	return z.log.Sync()
}
