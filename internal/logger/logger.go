package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/taskmaestro/maestro/internal/config"
)

const timeLayout = "2006/01/02 15:04:05"

// StderrPath sends log output to stderr instead of a rotated file.
const StderrPath = "-"

// New builds the application logger. Output goes to cfg.LogFile through
// lumberjack rotation; development mode switches to a colored console encoder.
func New(cfg config.RuntimeConfig) (*zap.Logger, error) {
	level, err := parseLevel(cfg.LogLevel, cfg.Development)
	if err != nil {
		return nil, err
	}

	var encCfg zapcore.EncoderConfig
	if cfg.Development {
		encCfg = zap.NewDevelopmentEncoderConfig()
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encCfg = zap.NewProductionEncoderConfig()
	}
	encCfg.EncodeTime = zapcore.TimeEncoderOfLayout(timeLayout)

	var enc zapcore.Encoder
	if cfg.Development {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, writer(cfg.LogFile), level)
	opts := []zap.Option{zap.AddCaller()}
	if cfg.Development {
		opts = append(opts, zap.Development())
	}
	return zap.New(core, opts...).Named("taskmaestro"), nil
}

func Nop() *zap.Logger {
	return zap.NewNop()
}

func writer(path string) zapcore.WriteSyncer {
	if path == "" || path == StderrPath {
		return zapcore.Lock(os.Stderr)
	}
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   path,
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	})
}

func parseLevel(raw string, development bool) (zapcore.Level, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if development {
			return zapcore.DebugLevel, nil
		}
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(raw)
	if err != nil {
		return zapcore.InfoLevel, fmt.Errorf("logger: %w", err)
	}
	return level, nil
}
