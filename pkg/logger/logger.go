package logger

import (
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Level is the minimum severity a Logger writes.
type Level int

const (
	DEBUG Level = iota
	INFO
	WARNING
	ERROR
)

func (l Level) zapLevel() zapcore.Level {
	switch l {
	case DEBUG:
		return zapcore.DebugLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// ParseLevel accepts debug, info, warning (or warn) and error, in any case.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DEBUG, nil
	case "", "info":
		return INFO, nil
	case "warning", "warn":
		return WARNING, nil
	case "error":
		return ERROR, nil
	}
	return INFO, fmt.Errorf("unknown log level %q", s)
}

// Logger writes levelled console lines. ERROR goes to its own writer
// (stderr by default), everything else to the main output.
type Logger struct {
	sugar *zap.SugaredLogger
	level zap.AtomicLevel
}

// New creates a logger writing to output, with errors on stderr.
func New(output io.Writer, minLevel Level) *Logger {
	return NewSplit(output, os.Stderr, minLevel)
}

// NewSplit creates a logger writing errors to errOutput and the rest to output.
func NewSplit(output, errOutput io.Writer, minLevel Level) *Logger {
	level := zap.NewAtomicLevelAt(minLevel.zapLevel())

	encoderCfg := zap.NewDevelopmentEncoderConfig()
	encoderCfg.EncodeTime = zapcore.TimeEncoderOfLayout("2006/01/02 15:04:05.000000")
	encoderCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	encoder := zapcore.NewConsoleEncoder(encoderCfg)

	belowError := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l < zapcore.ErrorLevel
	})
	atError := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return level.Enabled(l) && l >= zapcore.ErrorLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(output)), belowError),
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(errOutput)), atError),
	)

	return &Logger{sugar: zap.New(core).Sugar(), level: level}
}

// Default creates the standard logger for stdout.
func Default() *Logger {
	return New(os.Stdout, INFO)
}

// With returns a child logger that adds the given key/value pairs to every line.
func (l *Logger) With(keysAndValues ...interface{}) *Logger {
	return &Logger{sugar: l.sugar.With(keysAndValues...), level: l.level}
}

func (l *Logger) SetLevel(level Level) {
	l.level.SetLevel(level.zapLevel())
}

func (l *Logger) Info(msg string) {
	l.sugar.Info(msg)
}

func (l *Logger) Infof(format string, v ...interface{}) {
	l.sugar.Infof(format, v...)
}

func (l *Logger) Warning(msg string) {
	l.sugar.Warn(msg)
}

func (l *Logger) Warningf(format string, v ...interface{}) {
	l.sugar.Warnf(format, v...)
}

func (l *Logger) Error(msg string) {
	l.sugar.Error(msg)
}

func (l *Logger) Errorf(format string, v ...interface{}) {
	l.sugar.Errorf(format, v...)
}

func (l *Logger) Debug(msg string) {
	l.sugar.Debug(msg)
}

func (l *Logger) Debugf(format string, v ...interface{}) {
	l.sugar.Debugf(format, v...)
}

// Sync flushes buffered output.
func (l *Logger) Sync() error {
	return l.sugar.Sync()
}

// Global logger instance
var defaultLogger = Default()

// Package-level functions use the global logger.

func Info(msg string) {
	defaultLogger.Info(msg)
}

func Infof(format string, v ...interface{}) {
	defaultLogger.Infof(format, v...)
}

func Warning(msg string) {
	defaultLogger.Warning(msg)
}

func Warningf(format string, v ...interface{}) {
	defaultLogger.Warningf(format, v...)
}

func Error(msg string) {
	defaultLogger.Error(msg)
}

func Errorf(format string, v ...interface{}) {
	defaultLogger.Errorf(format, v...)
}

func Debug(msg string) {
	defaultLogger.Debug(msg)
}

func Debugf(format string, v ...interface{}) {
	defaultLogger.Debugf(format, v...)
}

// Sync flushes the global logger.
func Sync() error {
	return defaultLogger.Sync()
}

// SetLevel sets the minimum level of the global logger.
func SetLevel(level Level) {
	defaultLogger.SetLevel(level)
}

// Named returns a child of the global logger tagged with a component name.
func Named(component string) *Logger {
	return defaultLogger.With("component", component)
}
