// SPDX-License-Identifier: MIT

// Package logging builds the zap logger used by the lvmatch command.
package logging

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/katalvlaran/lvmatch/internal/config"
	"github.com/katalvlaran/lvmatch/matching"
)

// Log level names accepted by ParseLevel.
const (
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
)

var encoderConfig = zapcore.EncoderConfig{
	TimeKey:        "ts",
	LevelKey:       "lvl",
	NameKey:        "name",
	CallerKey:      "caller",
	MessageKey:     "message",
	StacktraceKey:  "stacktrace",
	LineEnding:     zapcore.DefaultLineEnding,
	EncodeLevel:    zapcore.CapitalLevelEncoder,
	EncodeTime:     zapcore.RFC3339TimeEncoder,
	EncodeDuration: zapcore.SecondsDurationEncoder,
	EncodeCaller:   zapcore.ShortCallerEncoder,
}

// ParseLevel maps a level name to zapcore. Unknown names yield InfoLevel.
func ParseLevel(level string) zapcore.Level {
	switch level {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelWarn:
		return zapcore.WarnLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// Logger bundles the zap logger with its level and file sink.
type Logger struct {
	*zap.Logger
	Atom zap.AtomicLevel

	file *lumberjack.Logger // nil without log.file
}

// New builds a logger writing to w (stderr when nil) and, if cfg.File is
// set, to a size-rotated file as well. Both sinks share one AtomicLevel.
func New(cfg config.LogConfig, w io.Writer) (*Logger, error) {
	if w == nil {
		w = os.Stderr
	}
	lvl := zap.NewAtomicLevelAt(ParseLevel(cfg.Level))

	var enc zapcore.Encoder
	if cfg.Format == "json" {
		enc = zapcore.NewJSONEncoder(encoderConfig)
	} else {
		enc = zapcore.NewConsoleEncoder(encoderConfig)
	}
	cores := []zapcore.Core{zapcore.NewCore(enc, zapcore.AddSync(w), lvl)}

	out := &Logger{Atom: lvl}
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, err
		}
		out.file = &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAge,
		}
		// files always get JSON lines
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(out.file), lvl))
	}
	out.Logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller())

	return out, nil
}

// Close flushes buffered entries and closes the rotating file, if any.
func (l *Logger) Close() error {
	_ = l.Sync() // stderr sync fails on some platforms
	if l.file != nil {
		return l.file.Close()
	}

	return nil
}

// Hooks returns engine options that trace every phase, relaxation and
// augmentation at debug level.
func Hooks(log *zap.Logger) []matching.Option {
	return []matching.Option{
		matching.WithOnPhase(func(p matching.PhaseInfo) {
			log.Debug("phase",
				zap.Int("phase", p.Phase),
				zap.Bool("reached_free", p.ReachedFree),
				zap.Int("augmented", p.Augmented),
				zap.Int("matched", p.Matched),
				zap.Bool("relaxed", p.Relaxed),
				zap.Int64("delta", p.Delta),
			)
		}),
		matching.WithOnRelax(func(r matching.RelaxInfo) {
			log.Debug("relax",
				zap.Int("phase", r.Phase),
				zap.Int64("delta", r.Delta),
				zap.Int("visited_left", r.VisitedLeft),
				zap.Int("visited_right", r.VisitedRight),
			)
		}),
		matching.WithOnAugment(func(left, right int) {
			log.Debug("augment", zap.Int("left", left), zap.Int("right", right))
		}),
	}
}
