// Package logging provides the structured logger used throughout synchro,
// wrapping zap the way the teacher's logger.Logger wraps it: a sugared
// logger with the Debugw/Infow/Warnw/Errorw keyword-argument convention.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the structured logger interface every component takes. It is
// satisfied by the sugared wrapper below around *zap.SugaredLogger (whose
// own With returns *zap.SugaredLogger, not Logger); the interface exists so
// callers depend on a small interface rather than the zap package itself.
type Logger interface {
	Debugw(msg string, keysAndValues ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	With(keysAndValues ...interface{}) Logger
	Sync() error
}

type sugared struct {
	*zap.SugaredLogger
}

func (s sugared) With(keysAndValues ...interface{}) Logger {
	return sugared{s.SugaredLogger.With(keysAndValues...)}
}

// New builds a production logger: JSON encoding, ISO8601 timestamps,
// level name included, matching the teacher's production zap config.
func New() (Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return sugared{l.Sugar()}, nil
}

// NewDevelopment builds a human-readable console logger for local runs.
func NewDevelopment() (Logger, error) {
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return sugared{l.Sugar()}, nil
}

// Nop returns a logger that discards everything, for tests.
func Nop() Logger {
	return sugared{zap.NewNop().Sugar()}
}
