package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

var zeroLogLevelMapping = map[string]zerolog.Level{
	"debug": zerolog.DebugLevel,
	"info":  zerolog.InfoLevel,
	"warn":  zerolog.WarnLevel,
	"error": zerolog.ErrorLevel,
	"fatal": zerolog.FatalLevel,
}

type zeroLogger struct {
	cfg    *LoggerConfig
	logger *zerolog.Logger
}

func (l *zeroLogger) getLogLevel() zerolog.Level {
	level, exists := zeroLogLevelMapping[l.cfg.Level]
	if !exists {
		return zerolog.DebugLevel
	}
	return level
}

func (l *zeroLogger) Init() error {
	writers := []io.Writer{os.Stdout}
	if l.cfg.Encoding == "console" {
		writers[0] = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	if l.cfg.FilePath != "" {
		if err := os.MkdirAll(l.cfg.FilePath, 0o755); err != nil {
			return fmt.Errorf("failed to create log directory: %w", err)
		}

		writers = append(writers, &lumberjack.Logger{
			Filename:   filepath.Join(l.cfg.FilePath, appName+".log"),
			MaxSize:    10,
			MaxAge:     20,
			MaxBackups: 5,
			LocalTime:  true,
			Compress:   true,
		})
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(l.getLogLevel()).
		With().
		Timestamp().
		Str(string(AppName), appName).
		Str(string(LoggerName), "Zerolog").
		Logger()

	l.logger = &logger
	return nil
}

func (l *zeroLogger) Sync() error {
	return nil
}

func (l *zeroLogger) Debug(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Debug().Fields(logParamsToZeroParams(withCategory(cat, sub, extra))).Msg(msg)
}

func (l *zeroLogger) Info(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Info().Fields(logParamsToZeroParams(withCategory(cat, sub, extra))).Msg(msg)
}

func (l *zeroLogger) Warn(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Warn().Fields(logParamsToZeroParams(withCategory(cat, sub, extra))).Msg(msg)
}

func (l *zeroLogger) Error(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Error().Fields(logParamsToZeroParams(withCategory(cat, sub, extra))).Msg(msg)
}

func (l *zeroLogger) Fatal(cat Category, sub SubCategory, msg string, extra map[ExtraKey]any) {
	l.logger.Fatal().Fields(logParamsToZeroParams(withCategory(cat, sub, extra))).Msg(msg)
}
