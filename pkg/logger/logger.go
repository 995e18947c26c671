package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide logger. Initialized once from main before any
// request is served; nil-checked by middleware so tests can run without it.
var Log *zap.Logger

// Init builds the global logger. Debug mode uses the human-readable console
// encoder, production mode JSON.
func Init(debug bool) error {
	var cfg zap.Config
	if debug {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	l, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		return err
	}
	Log = l
	return nil
}

// Sync flushes buffered entries. Called on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
