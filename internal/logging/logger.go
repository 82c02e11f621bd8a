// Copyright (c) 2023-2025 RapidaAI
// Author: Prashant Srivastav <prashant@rapida.ai>
//
// Licensed under GPL-2.0 with Rapida Additional Terms.
// See LICENSE.md or contact sales@rapida.ai for commercial usage.

// Package logging provides the structured logger injected into every
// component, backed by zap with a rotating file sink.
package logging

import (
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the method set every component depends on. It is passed by
// constructor injection, never read from a package global.
type Logger interface {
	Info(args ...interface{})
	Infof(format string, args ...interface{})
	Infow(msg string, keysAndValues ...interface{})
	Debugf(format string, args ...interface{})
	Debugw(msg string, keysAndValues ...interface{})
	Warnw(msg string, keysAndValues ...interface{})
	Errorf(format string, args ...interface{})
	Errorw(msg string, keysAndValues ...interface{})
	Benchmark(op string, d time.Duration)
	Sync() error
}

type zapLogger struct {
	s *zap.SugaredLogger
}

// Option configures New.
type Option func(*options)

type options struct {
	name     string
	path     string
	level    string
	maxSizeMB int
}

// Name sets the service name attached to every log line.
func Name(name string) Option { return func(o *options) { o.name = name } }

// Path sets the directory the rotating log file is written under. An
// empty path disables file output; logs still go to stderr.
func Path(path string) Option { return func(o *options) { o.path = path } }

// Level sets the minimum log level ("debug", "info", "warn", "error").
func Level(level string) Option { return func(o *options) { o.level = level } }

// New builds a Logger writing structured JSON to stderr and, when Path
// is set, to a rotating file via lumberjack.
func New(opts ...Option) (Logger, error) {
	o := &options{name: "lia-client", level: "info", maxSizeMB: 50}
	for _, apply := range opts {
		apply(o)
	}

	var level zapcore.Level
	if err := level.Set(o.level); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", o.level, err)
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "ts"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encoder := zapcore.NewJSONEncoder(encoderCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(os.Stderr)), level),
	}
	if o.path != "" {
		rotator := &lumberjack.Logger{
			Filename:   o.path + "/lia-client.log",
			MaxSize:    o.maxSizeMB,
			MaxBackups: 5,
			MaxAge:     28,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(rotator), level))
	}

	core := zapcore.NewTee(cores...)
	base := zap.New(core).With(zap.String("service", o.name))
	return &zapLogger{s: base.Sugar()}, nil
}

func (l *zapLogger) Info(args ...interface{})                       { l.s.Info(args...) }
func (l *zapLogger) Infof(format string, args ...interface{})       { l.s.Infof(format, args...) }
func (l *zapLogger) Infow(msg string, kv ...interface{})            { l.s.Infow(msg, kv...) }
func (l *zapLogger) Debugf(format string, args ...interface{})      { l.s.Debugf(format, args...) }
func (l *zapLogger) Debugw(msg string, kv ...interface{})           { l.s.Debugw(msg, kv...) }
func (l *zapLogger) Warnw(msg string, kv ...interface{})            { l.s.Warnw(msg, kv...) }
func (l *zapLogger) Errorf(format string, args ...interface{})      { l.s.Errorf(format, args...) }
func (l *zapLogger) Errorw(msg string, kv ...interface{})           { l.s.Errorw(msg, kv...) }
func (l *zapLogger) Sync() error                                    { return l.s.Sync() }

// Benchmark logs the duration of a named operation at debug level.
func (l *zapLogger) Benchmark(op string, d time.Duration) {
	l.s.Debugw("benchmark", "op", op, "duration", d.String())
}

// NewNop returns a Logger that discards everything, for tests that need
// to satisfy the constructor-injection contract without noise.
func NewNop() Logger {
	return &zapLogger{s: zap.NewNop().Sugar()}
}
