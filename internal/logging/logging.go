// Package logging configures the process-wide zerolog logger.
package logging

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls the logger.
type Config struct {
	Level        string `json:"level" yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format       string `json:"format" yaml:"format" validate:"omitempty,oneof=json pretty"`
	TimeFormat   string `json:"time_format" yaml:"time_format"`
	ReportCaller bool   `json:"report_caller" yaml:"report_caller"`
}

// Init replaces the global logger according to cfg. Unknown levels fall back to info.
func Init(cfg Config) {
	InitWriter(cfg, os.Stdout)
}

// InitWriter is Init with an explicit destination.
func InitWriter(cfg Config, out io.Writer) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TimeFormat == "" {
		zerolog.TimeFieldFormat = time.RFC3339
	} else {
		zerolog.TimeFieldFormat = cfg.TimeFormat
	}

	if cfg.Format == "pretty" {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: cfg.TimeFormat}
	}

	ctx := zerolog.New(out).Level(level).With().Timestamp()
	if cfg.ReportCaller {
		ctx = ctx.Caller()
	}
	log.Logger = ctx.Logger()
}

// WithRequestID returns a context carrying a logger tagged with requestID.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return log.Logger.With().Str("request_id", requestID).Logger().WithContext(ctx)
}

// Ctx returns the logger stored in ctx, or the global logger.
func Ctx(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l != nil && l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &log.Logger
}
