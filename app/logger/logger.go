package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Options struct {
	Level  string
	Format string // console or json
	// File, when set, receives a copy of every entry and is rotated by size.
	File string
}

func EncoderConfig() zapcore.EncoderConfig {
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	return encoderConfig
}

func encoder(format string) zapcore.Encoder {
	if format == "json" {
		return zapcore.NewJSONEncoder(EncoderConfig())
	}
	return zapcore.NewConsoleEncoder(EncoderConfig())
}

func rotatingFile(path string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    50,
		MaxBackups: 3,
		LocalTime:  true,
		Compress:   true,
	}
}

// New builds a logger writing to stderr and, optionally, a rotating file.
// The returned closer releases the file.
func New(opts Options) (*zap.Logger, io.Closer, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(opts.Format), zapcore.Lock(zapcore.AddSync(os.Stderr)), level),
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		file := rotatingFile(opts.File)
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(EncoderConfig()), zapcore.AddSync(file), level))
		closer = file
	}

	var stackTraceLevel zap.LevelEnablerFunc = func(l zapcore.Level) bool {
		return l >= zapcore.DPanicLevel
	}

	logger := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddStacktrace(stackTraceLevel))
	return logger, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
