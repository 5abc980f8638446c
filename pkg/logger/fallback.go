/* pkg/logger/fallback.go */

package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewFallbackLogger builds a console-only logger. Used before full
// initialization and whenever no log file is writable.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.Lock(os.Stderr),
		consoleLevel(),
	)
	return zap.New(core, zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitializeWithFallback wires the standard logger: a human-readable
// console core teed with a JSON file core at the first writable
// platform log path. Degrades to console-only when no path is writable.
func InitializeWithFallback() {
	path, err := FindWritableLogPath()
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  No writable log path found. Logging to console only.")
		SetLogger(NewFallbackLogger())
		return
	}

	writer, err := GetLogFileWriter(path)
	if err != nil {
		fmt.Fprintln(os.Stderr, "⚠️  Could not write to log file, logging to console only:", err)
		SetLogger(NewFallbackLogger())
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), consoleLevel()),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), writer, fileLevel()),
	)

	l := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	SetLogger(l)
	l.Debug("Logger initialized",
		zap.String("log_level", os.Getenv("LOG_LEVEL")),
		zap.String("log_path", path),
	)
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewProductionEncoderConfig()
	cfg.TimeKey = "T"
	cfg.LevelKey = "L"
	cfg.NameKey = "N"
	cfg.CallerKey = "C"
	cfg.MessageKey = "M"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// ParseLogLevel maps a LOG_LEVEL string to a zap level, defaulting to Info.
func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG", "trace", "debug":
		return zapcore.DebugLevel
	case "INFO", "info":
		return zapcore.InfoLevel
	case "WARN", "warn":
		return zapcore.WarnLevel
	case "ERROR", "error":
		return zapcore.ErrorLevel
	case "FATAL", "fatal":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

// consoleLevel keeps interactive sessions quiet: warnings and errors
// only, unless LOG_LEVEL asks for more. The file core keeps the detail.
func consoleLevel() zapcore.Level {
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		return ParseLogLevel(lvl)
	}
	return zapcore.WarnLevel
}

func fileLevel() zapcore.Level {
	return ParseLogLevel(os.Getenv("LOG_LEVEL"))
}
