// Package logging builds the zap logger used by the CLI and the HTTP service.
package logging

import (
	"fmt"
	"os"
	"strings"

	"github.com/Holastor/AION-2-Localization/pkg/codec"
	"github.com/Holastor/AION-2-Localization/pkg/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New creates a logger writing human readable lines to stderr and, when
// cfg.File is set, JSON lines to a rotating log file.
func New(cfg config.Logging) (*zap.Logger, error) {
	return NewWithOutput(cfg, zapcore.Lock(os.Stderr))
}

// NewWithOutput is New with the console output replaced by out
func NewWithOutput(cfg config.Logging, out zapcore.WriteSyncer) (*zap.Logger, error) {
	level, err := ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}

	consoleEncoder := zap.NewDevelopmentEncoderConfig()
	consoleEncoder.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
	consoleEncoder.EncodeLevel = zapcore.CapitalLevelEncoder
	cores := []zapcore.Core{
		zapcore.NewCore(zapcore.NewConsoleEncoder(consoleEncoder), out, level),
	}

	if cfg.File != "" {
		fileEncoder := zap.NewProductionEncoderConfig()
		fileEncoder.EncodeTime = zapcore.ISO8601TimeEncoder
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   cfg.Compress,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(fileEncoder), zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...)), nil
}

// ParseLevel maps a configuration level name onto a zap level
func ParseLevel(name string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return zapcore.DebugLevel, nil
	case "", "info":
		return zapcore.InfoLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("unknown log level %q", name)
	}
}

// LogDiagnostics writes one log line per diagnostic. Kinds that end a scan are
// logged at error level, everything else at warn level.
func LogDiagnostics(logger *zap.Logger, source string, diags codec.Diagnostics) {
	for _, d := range diags {
		fields := []zap.Field{
			zap.String("source", source),
			zap.Int("offset", d.Offset),
			zap.Stringer("kind", d.Kind),
		}
		if d.Kind.Fatal() {
			logger.Error(d.Message, fields...)
		} else {
			logger.Warn(d.Message, fields...)
		}
	}
}
