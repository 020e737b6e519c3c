// Package logger builds the zap logger used for hatch's diagnostic output.
// User-facing results go through fledge/output; the logger only carries
// debug detail and is silent unless --verbose is given.
package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options configures New.
type Options struct {
	Verbose bool
	Writer  io.Writer // defaults to os.Stderr
}

// New returns a console logger at debug level when opts.Verbose is set and
// a no-op logger otherwise.
func New(opts Options) *zap.Logger {
	if !opts.Verbose {
		return zap.NewNop()
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	encoderConfig := zap.NewDevelopmentEncoderConfig()
	encoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder

	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.Lock(zapcore.AddSync(w)),
		zapcore.DebugLevel,
	)).Named("hatch")
}
