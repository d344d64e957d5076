package logging

import (
	"fmt"

	"github.com/hilthontt/chatrelay/internal/infrastructure/env"
)

const appName = "chatrelay"

type Logger interface {
	Init() error
	Sync() error

	Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
	Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any)
}

// LoggerConfig selects the backend and its output. An empty FilePath logs to
// stdout only.
type LoggerConfig struct {
	FilePath string
	Encoding string
	Level    string
	Logger   string
}

func NewDefaultConfig() *LoggerConfig {
	return &LoggerConfig{
		FilePath: env.GetString("LOGGER_FILE_PATH", "./logs/"),
		Encoding: env.GetString("LOGGER_ENCODING", "json"),
		Level:    env.GetString("LOGGER_LEVEL", "debug"),
		Logger:   env.GetString("LOGGER_LOGGER", "zap"),
	}
}

func NewLogger(cfg *LoggerConfig) (Logger, error) {
	var l Logger
	switch cfg.Logger {
	case "zap", "":
		l = &zapLogger{cfg: cfg}
	case "zerolog":
		l = &zeroLogger{cfg: cfg}
	default:
		return nil, fmt.Errorf("logger not supported: %q (supported loggers: [zap, zerolog])", cfg.Logger)
	}

	if err := l.Init(); err != nil {
		return nil, err
	}
	return l, nil
}
