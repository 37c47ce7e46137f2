// Package xlog builds the zap loggers used by the command line tools.
package xlog

import (
	"os"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"
)

var stderrIsTerminal int32 = -1 // -1 = unchecked, 0 = no, 1 = yes

// IsTerminal reports whether stderr is a terminal. The result is cached.
func IsTerminal() bool {
	if v := atomic.LoadInt32(&stderrIsTerminal); v >= 0 {
		return v == 1
	}
	result := term.IsTerminal(int(os.Stderr.Fd()))
	if result {
		atomic.StoreInt32(&stderrIsTerminal, 1)
	} else {
		atomic.StoreInt32(&stderrIsTerminal, 0)
	}
	return result
}

// New returns a console logger named tag writing to stderr at level.
// Levels are colored when stderr is a terminal.
func New(tag, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, err
	}

	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = lvl > zapcore.DebugLevel
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	if IsTerminal() {
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Named(tag), nil
}

// Must is New for static configuration; it panics on error.
func Must(tag, level string) *zap.Logger {
	l, err := New(tag, level)
	if err != nil {
		panic(err)
	}
	return l
}
