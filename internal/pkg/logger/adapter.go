package logger

import (
	"log/slog"

	"wallet_config/internal/app/port"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
)

// slogAdapter implements port.Logger on top of the package-level functions.
type slogAdapter struct{}

// NewSlogAdapter returns a port.Logger writing through the global logger.
func NewSlogAdapter() port.Logger {
	return &slogAdapter{}
}

func (a *slogAdapter) Info(msg string, args ...any)  { Info(msg, args...) }
func (a *slogAdapter) Debug(msg string, args ...any) { Debug(msg, args...) }
func (a *slogAdapter) Warn(msg string, args ...any)  { Warn(msg, args...) }
func (a *slogAdapter) Error(msg string, args ...any) { Error(msg, args...) }

// loggerAdapter wraps a specific slog.Logger.
type loggerAdapter struct {
	l *slog.Logger
}

// FromSlog adapts l to port.Logger.
func FromSlog(l *slog.Logger) port.Logger {
	return &loggerAdapter{l: l}
}

// NewNop returns a port.Logger that discards everything.
func NewNop() port.Logger {
	return FromSlog(slog.New(slogzap.Option{Level: slog.LevelError + 1, Logger: zap.NewNop()}.NewZapHandler()))
}

func (a *loggerAdapter) Info(msg string, args ...any)  { a.l.Info(msg, args...) }
func (a *loggerAdapter) Debug(msg string, args ...any) { a.l.Debug(msg, args...) }
func (a *loggerAdapter) Warn(msg string, args ...any)  { a.l.Warn(msg, args...) }
func (a *loggerAdapter) Error(msg string, args ...any) { a.l.Error(msg, args...) }
