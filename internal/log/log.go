package log

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	mu            sync.RWMutex
	defaultLogger = zap.NewNop()
)

type Options struct {
	// Path of a JSON log file. Empty disables file logging.
	Path       string
	MaxSizeMB  int
	MaxBackups int
	// Verbose adds a console core at debug level on stderr.
	Verbose bool
}

func Get() *zap.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return defaultLogger
}

// Set replaces the default logger. With neither a path nor verbose
// output the logger stays a no-op.
func Set(opts Options) {
	logger := New(opts)

	mu.Lock()
	defer mu.Unlock()
	defaultLogger = logger
}

func New(opts Options) *zap.Logger {
	var cores []zapcore.Core

	if opts.Path != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.Path,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			Compress:   true,
		}

		encoderConfig := zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

		level := zap.InfoLevel
		if opts.Verbose {
			level = zap.DebugLevel
		}

		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderConfig),
			zapcore.AddSync(rotator),
			level,
		))
	}

	if opts.Verbose {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
			zapcore.Lock(os.Stderr),
			zap.DebugLevel,
		))
	}

	if len(cores) == 0 {
		return zap.NewNop()
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller())
}

func Flush() {
	_ = Get().Sync()
}
