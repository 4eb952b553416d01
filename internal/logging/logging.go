// Package logging provides the zap-backed console logger used by the
// agent service. Messages are prefixed with a color-coded component tag
// so interleaved session logs stay readable.
package logging

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ANSI color codes.
const (
	reset = "\033[0m"
	bold  = "\033[1m"
	dim   = "\033[2m"

	red     = "\033[31m"
	yellow  = "\033[33m"
	gray    = "\033[90m"
	brRed   = "\033[91m"
	brGreen = "\033[92m"
	brBlue  = "\033[94m"
	brMag   = "\033[95m"
	brCyan  = "\033[96m"
	brWhite = "\033[97m"
)

// Component tags the subsystem a log line belongs to.
type Component string

const (
	ComponentService Component = "SERVICE"
	ComponentSession Component = "SESSION"
	ComponentAgent   Component = "AGENT"
	ComponentStore   Component = "STORE"
	ComponentMetrics Component = "METRICS"
)

var componentColors = map[Component]string{
	ComponentService: brGreen,
	ComponentSession: brBlue,
	ComponentAgent:   brMag,
	ComponentStore:   yellow,
	ComponentMetrics: brCyan,
}

// Logger wraps zap.Logger with component-tagged helpers.
type Logger struct {
	*zap.Logger
	colors bool
}

// New creates a console logger. Debug lines are emitted only when
// verbose is set.
func New(verbose, colors bool) *Logger {
	level := zapcore.InfoLevel
	if verbose {
		level = zapcore.DebugLevel
	}

	core := zapcore.NewCore(
		consoleEncoder(colors),
		zapcore.AddSync(os.Stdout),
		level,
	)

	return &Logger{
		Logger: zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)),
		colors: colors,
	}
}

// consoleEncoder renders compact lines: HH:MM:SS, one-letter level,
// short caller.
func consoleEncoder(colors bool) zapcore.Encoder {
	cfg := zap.NewDevelopmentEncoderConfig()

	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		s := t.Format("15:04:05")
		if colors {
			s = dim + s + reset
		}
		enc.AppendString(s)
	}

	cfg.EncodeLevel = func(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
		letter := "?"
		switch level {
		case zapcore.DebugLevel:
			letter = "D"
		case zapcore.InfoLevel:
			letter = "I"
		case zapcore.WarnLevel:
			letter = "W"
		case zapcore.ErrorLevel:
			letter = "E"
		}
		if colors {
			letter = levelColor(level) + bold + letter + reset
		}
		enc.AppendString(letter)
	}

	cfg.EncodeCaller = func(caller zapcore.EntryCaller, enc zapcore.PrimitiveArrayEncoder) {
		file := caller.File
		if idx := strings.LastIndex(file, "/"); idx >= 0 {
			file = file[idx+1:]
		}
		file = strings.TrimSuffix(file, ".go")
		if colors {
			file = dim + file + reset
		}
		enc.AppendString(file)
	}

	return zapcore.NewConsoleEncoder(cfg)
}

func levelColor(level zapcore.Level) string {
	switch level {
	case zapcore.DebugLevel:
		return gray
	case zapcore.InfoLevel:
		return brWhite
	case zapcore.WarnLevel:
		return yellow
	case zapcore.ErrorLevel:
		return brRed
	default:
		return red
	}
}

func (l *Logger) tag(component Component, msg string) string {
	if l.colors {
		color, ok := componentColors[component]
		if !ok {
			color = brWhite
		}
		return fmt.Sprintf("%s[%s]%s %s", color, component, reset, msg)
	}
	return fmt.Sprintf("[%s] %s", component, msg)
}

// ComponentDebug logs a debug line tagged with the component.
func (l *Logger) ComponentDebug(c Component, msg string, fields ...zap.Field) {
	l.Debug(l.tag(c, msg), fields...)
}

// ComponentInfo logs an info line tagged with the component.
func (l *Logger) ComponentInfo(c Component, msg string, fields ...zap.Field) {
	l.Info(l.tag(c, msg), fields...)
}

// ComponentWarn logs a warning tagged with the component.
func (l *Logger) ComponentWarn(c Component, msg string, fields ...zap.Field) {
	l.Warn(l.tag(c, msg), fields...)
}

// ComponentError logs an error tagged with the component.
func (l *Logger) ComponentError(c Component, msg string, fields ...zap.Field) {
	l.Error(l.tag(c, msg), fields...)
}
