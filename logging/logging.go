// Package logging holds the engine wide loggers.
//
// InfoLog, WarnLog and ErrLog are plain *log.Logger values so they can be used
// like any standard logger (Println, Printf, Fatalf, Panicf...), but every line
// they write ends up in a zap core. L returns that structured logger directly.
package logging

import (
	"log"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	InfoLog *log.Logger
	WarnLog *log.Logger
	ErrLog  *log.Logger

	mu     sync.Mutex
	logger *zap.Logger
)

func init() {

	l, err := zap.NewDevelopment(zap.AddCallerSkip(1))
	if err != nil {
		l = zap.NewNop()
	}

	setLogger(l)
}

// Init rebuilds the loggers with the given level ("debug", "info", "warn", "error").
// When development is true a human readable console encoder is used, otherwise JSON.
func Init(level string, development bool) error {

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return err
	}

	var cfg zap.Config
	if development {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		return err
	}

	setLogger(l)
	return nil
}

// SetLogger replaces the underlying zap logger, mainly useful in tests with zaptest/observer.
func SetLogger(l *zap.Logger) {
	setLogger(l)
}

func setLogger(l *zap.Logger) {

	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		_ = logger.Sync()
	}

	logger = l
	InfoLog = zap.NewStdLog(l)
	WarnLog = mustStdLogAt(l, zapcore.WarnLevel)
	ErrLog = mustStdLogAt(l, zapcore.ErrorLevel)
}

func mustStdLogAt(l *zap.Logger, lvl zapcore.Level) *log.Logger {

	stdLog, err := zap.NewStdLogAt(l, lvl)
	if err != nil {
		// Only fails for levels zap doesn't know about
		return zap.NewStdLog(l)
	}

	return stdLog
}

// L returns the structured logger behind the std loggers
func L() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Sync flushes any buffered log entries
func Sync() {
	_ = L().Sync()
}
