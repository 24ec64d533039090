// Copyright © 2018 One Concern

// Package dlogger builds the zap loggers of versiond.
//
// The API server logs JSON lines, while interactive commands log to stderr
// in a console format, out of the way of their standard output.
package dlogger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// LogLevelInfo sets the log level to info
	LogLevelInfo = "info"

	// LogLevelDebug sets the log level to debug
	LogLevelDebug = "debug"

	// LogLevelNone sets logger to no logging
	LogLevelNone = "none"
)

// Option tunes the logger
type Option func(*settings)

type settings struct {
	console bool
	service string
}

// Console switches to a human-readable encoding
func Console() Option {
	return func(s *settings) {
		s.console = true
	}
}

// Service tags every entry with a service name
func Service(name string) Option {
	return func(s *settings) {
		s.service = name
	}
}

// GetLogger returns a zap logger with the specified level ("debug", "info", "warn", "error" or "none")
func GetLogger(logLevel string, opts ...Option) (*zap.Logger, error) {
	return build(logLevel, opts)
}

func build(logLevel string, opts []Option, zapOpts ...zap.Option) (*zap.Logger, error) {
	if logLevel == LogLevelNone {
		return zap.NewNop(), nil
	}
	s := settings{service: "versiond"}
	for _, apply := range opts {
		apply(&s)
	}

	var lvl zapcore.Level
	if err := lvl.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, err
	}

	zapConfig := zap.NewProductionConfig()
	if s.console {
		zapConfig = zap.NewDevelopmentConfig()
		zapConfig.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapConfig.EncoderConfig.EncodeCaller = nil
		zapConfig.Development = false
	}
	zapConfig.Level = zap.NewAtomicLevelAt(lvl)
	zapConfig.DisableStacktrace = true

	logger, err := zapConfig.Build(zapOpts...)
	if err != nil {
		return nil, err
	}
	if s.service == "" || s.console {
		return logger, nil
	}
	return logger.With(zap.String("service", s.service)), nil
}

// MustGetLogger returns a zap logger with the specified level or panics
func MustGetLogger(logLevel string, opts ...Option) *zap.Logger {
	l, err := GetLogger(logLevel, opts...)
	if err != nil {
		panic(err)
	}
	return l
}
