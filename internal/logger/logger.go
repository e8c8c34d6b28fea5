// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logger configures the zap logger used for diagnostics. Output
// goes to stderr, or to a size-rotated file when a path is configured, so
// that stdout stays free for generated tracks.
package logger

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/pdiddy/slidevtt/pkg/types"
)

type contextKey struct{}

var global *zap.SugaredLogger

// New builds a logger from cfg. When cfg.Path is empty, entries are written
// to w.
func New(cfg types.LoggingConfig, w io.Writer) (*zap.SugaredLogger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		l, err := zapcore.ParseLevel(cfg.Level)
		if err != nil {
			return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
		}
		level = l
	}

	sink := zapcore.AddSync(w)
	if cfg.Path != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Path,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
			Compress:   cfg.Compress,
		})
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), sink, level)

	return zap.New(core).Sugar(), nil
}

// Init replaces the process-wide logger returned by Get.
func Init(cfg types.LoggingConfig) (*zap.SugaredLogger, error) {
	l, err := New(cfg, os.Stderr)
	if err != nil {
		return nil, err
	}
	global = l
	return l, nil
}

// Sync flushes buffered entries of the process-wide logger.
func Sync() error {
	if global != nil {
		return global.Sync()
	}
	return nil
}

// Get returns the logger stored in ctx, then the process-wide logger, then
// a no-op logger.
func Get(ctx context.Context) *zap.SugaredLogger {
	if ctx != nil {
		if l, ok := ctx.Value(contextKey{}).(*zap.SugaredLogger); ok {
			return l
		}
	}
	if global != nil {
		return global
	}
	return zap.NewNop().Sugar()
}

// WithContext returns a copy of ctx carrying l.
func WithContext(ctx context.Context, l *zap.SugaredLogger) context.Context {
	return context.WithValue(ctx, contextKey{}, l)
}
