// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging provides the zap logger used by the CLI. Log lines go to
// stderr so stdout carries only converted values. Key/value fields can be
// attached to a context and picked up by LoggerOf.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.RWMutex
	logger = newLogger(os.Stderr, zapcore.WarnLevel)
)

func newLogger(w io.Writer, level zapcore.Level) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), zapcore.AddSync(w), level)
	return zap.New(core)
}

// Setup replaces the logger with one writing to w at the named level
// (debug, info, warn, error).
func Setup(w io.Writer, level string) error {
	var l zapcore.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return fmt.Errorf("invalid log level %q: %w", level, err)
	}
	mu.Lock()
	logger = newLogger(w, l)
	mu.Unlock()
	return nil
}

// L returns the current logger.
func L() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}

type kvLists struct {
	values   []zap.Field
	previous *kvLists
}

func (list *kvLists) appendTo(t []zap.Field) []zap.Field {
	if list.previous != nil {
		t = list.previous.appendTo(t)
	}
	return append(t, list.values...)
}

type kvKey struct{}

// CtxAddKvs returns a context carrying kvs (alternating keys and values) in
// addition to any fields already attached.
func CtxAddKvs(ctx context.Context, kvs ...any) context.Context {
	if len(kvs) == 0 {
		return ctx
	}

	fields := make([]zap.Field, 0, len(kvs)/2+1)
	for i := 0; i+1 < len(kvs); i += 2 {
		fields = append(fields, zap.String(fmt.Sprint(kvs[i]), fmt.Sprint(kvs[i+1])))
	}

	previous, _ := ctx.Value(kvKey{}).(*kvLists)
	return context.WithValue(ctx, kvKey{}, &kvLists{
		values:   fields,
		previous: previous,
	})
}

// LoggerOf returns the logger with the context's fields attached.
func LoggerOf(ctx context.Context) *zap.Logger {
	list, _ := ctx.Value(kvKey{}).(*kvLists)
	if list == nil {
		return L()
	}
	return L().With(list.appendTo(nil)...)
}
