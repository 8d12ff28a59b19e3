package logger

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	slogzap "github.com/samber/slog-zap/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	globalLogger *slog.Logger
	zapLogger    *zap.Logger
	initMu       sync.Mutex
)

// ParseLevel maps a config level string onto a slog level. Unknown strings fall back to INFO.
func ParseLevel(levelStr string) (slog.Level, bool) {
	switch strings.ToUpper(strings.TrimSpace(levelStr)) {
	case "DEBUG":
		return slog.LevelDebug, true
	case "INFO", "":
		return slog.LevelInfo, true
	case "WARN", "WARNING":
		return slog.LevelWarn, true
	case "ERROR":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}

// Init builds the zap core, routes the global slog logger through it and returns the zap logger.
// format is "json" (production encoder) or "console" (development encoder).
func Init(levelStr, format string) (*zap.Logger, error) {
	initMu.Lock()
	defer initMu.Unlock()

	level, ok := ParseLevel(levelStr)

	var zcfg zap.Config
	if strings.EqualFold(format, "console") {
		zcfg = zap.NewDevelopmentConfig()
	} else {
		zcfg = zap.NewProductionConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(toZapLevel(level))

	zl, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build zap logger: %w", err)
	}

	handler := slogzap.Option{Level: level, Logger: zl}.NewZapHandler()
	globalLogger = slog.New(handler)
	zapLogger = zl
	slog.SetDefault(globalLogger)

	if !ok {
		globalLogger.Warn("Invalid log level string, defaulting to INFO", "input", levelStr)
	}
	return zl, nil
}

func toZapLevel(l slog.Level) zapcore.Level {
	switch {
	case l <= slog.LevelDebug:
		return zapcore.DebugLevel
	case l <= slog.LevelInfo:
		return zapcore.InfoLevel
	case l <= slog.LevelWarn:
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

// Sync flushes the zap core, if one was built.
func Sync() {
	initMu.Lock()
	defer initMu.Unlock()
	if zapLogger != nil {
		_ = zapLogger.Sync()
	}
}

func ensureInitialized() *slog.Logger {
	initMu.Lock()
	l := globalLogger
	initMu.Unlock()
	if l != nil {
		return l
	}
	if _, err := Init("INFO", "json"); err != nil {
		return slog.Default()
	}
	initMu.Lock()
	defer initMu.Unlock()
	return globalLogger
}

// Debug logs a message at DebugLevel.
func Debug(msg string, args ...any) {
	ensureInitialized().Debug(msg, args...)
}

// Info logs a message at InfoLevel.
func Info(msg string, args ...any) {
	ensureInitialized().Info(msg, args...)
}

// Warn logs a message at WarnLevel.
func Warn(msg string, args ...any) {
	ensureInitialized().Warn(msg, args...)
}

// Error logs a message at ErrorLevel.
func Error(msg string, args ...any) {
	ensureInitialized().Error(msg, args...)
}

// Fatal logs a message at ErrorLevel then exits.
func Fatal(msg string, args ...any) {
	ensureInitialized().Error(msg, args...)
	Sync()
	os.Exit(1)
}
