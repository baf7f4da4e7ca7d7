package logger

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is a logging severity. TraceLevel sits one step below zap's debug level.
type Level = zapcore.Level

const (
	TraceLevel Level = zapcore.DebugLevel - 1
	DebugLevel Level = zapcore.DebugLevel
	InfoLevel  Level = zapcore.InfoLevel
	WarnLevel  Level = zapcore.WarnLevel
	ErrorLevel Level = zapcore.ErrorLevel
	PanicLevel Level = zapcore.PanicLevel
	FatalLevel Level = zapcore.FatalLevel
)

var (
	mu    sync.RWMutex
	level = zap.NewAtomicLevelAt(InfoLevel)
	base  = zap.New(newCore(zapcore.Lock(os.Stderr)))
)

func encoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeLevel = encodeLevel
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05")
	return cfg
}

func encodeLevel(l zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	if l == TraceLevel {
		enc.AppendString("TRACE")
		return
	}
	zapcore.CapitalLevelEncoder(l, enc)
}

func newCore(ws zapcore.WriteSyncer) zapcore.Core {
	return zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig()), ws, level)
}

// Init configures the level and, when file is non-empty, mirrors output to that file.
func Init(levelName, file string) error {
	l, err := ParseLevel(levelName)
	if err != nil {
		return err
	}
	SetLevel(l)

	cores := []zapcore.Core{newCore(zapcore.Lock(os.Stderr))}
	if strings.TrimSpace(file) != "" {
		ws, _, err := zap.Open(file)
		if err != nil {
			return fmt.Errorf("open log file %s: %w", file, err)
		}
		cores = append(cores, newCore(ws))
	}

	mu.Lock()
	base = zap.New(zapcore.NewTee(cores...))
	mu.Unlock()
	return nil
}

// ParseLevel converts a level name (trace, debug, info, warn, error, fatal, panic).
func ParseLevel(name string) (Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "":
		return InfoLevel, nil
	case "trace":
		return TraceLevel, nil
	case "warning":
		return WarnLevel, nil
	}
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(name)); err != nil {
		return InfoLevel, fmt.Errorf("invalid log level %q: use trace, debug, info, warn, error, fatal or panic", name)
	}
	return l, nil
}

func SetLevel(l Level) {
	level.SetLevel(l)
}

func GetLevel() Level {
	return level.Level()
}

// SetOutput replaces the underlying zap logger and returns a func restoring the previous one.
func SetOutput(l *zap.Logger) (restore func()) {
	mu.Lock()
	prev := base
	base = l
	mu.Unlock()
	return func() {
		mu.Lock()
		base = prev
		mu.Unlock()
	}
}

// Sync flushes buffered output.
func Sync() {
	mu.RLock()
	l := base
	mu.RUnlock()
	_ = l.Sync()
}

func logf(lvl Level, format string, args ...any) {
	if lvl < FatalLevel && !level.Enabled(lvl) {
		return
	}
	mu.RLock()
	l := base
	mu.RUnlock()
	if ce := l.Check(lvl, fmt.Sprintf(format, args...)); ce != nil {
		ce.Write()
	}
}

func Trace(format string, args ...any) { logf(TraceLevel, format, args...) }
func Debug(format string, args ...any) { logf(DebugLevel, format, args...) }
func Info(format string, args ...any)  { logf(InfoLevel, format, args...) }
func Warn(format string, args ...any)  { logf(WarnLevel, format, args...) }
func Error(format string, args ...any) { logf(ErrorLevel, format, args...) }
func Fatal(format string, args ...any) { logf(FatalLevel, format, args...) }
