// Package logging builds the zap logger used for diagnostics.
package logging

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	// Level is a zap level name (debug, info, warn, error).
	Level string

	// Format is "console" (default) or "json".
	Format string

	// Output receives log lines; defaults to stderr.
	Output io.Writer
}

// New creates a logger. Console output uses the development encoder with
// capitalized levels; json output uses the production encoder.
func New(opts Options) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %w", err)
	}

	var encCfg zapcore.EncoderConfig
	var encoder zapcore.Encoder
	switch opts.Format {
	case "json":
		encCfg = zap.NewProductionEncoderConfig()
		encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
		encoder = zapcore.NewJSONEncoder(encCfg)
	case "console", "":
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		encCfg.CallerKey = zapcore.OmitKey
		encoder = zapcore.NewConsoleEncoder(encCfg)
	default:
		return nil, fmt.Errorf("unknown log format %q (use console or json)", opts.Format)
	}

	out := opts.Output
	if out == nil {
		out = os.Stderr
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(out)), level)
	return zap.New(core), nil
}

// NewRunID returns a fresh identifier for correlating one run's log lines.
func NewRunID() string {
	return uuid.NewString()
}
