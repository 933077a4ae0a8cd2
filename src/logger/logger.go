// Copyright (c) 2025 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger defines the interface for logging operations.
// It provides methods for different log levels and formatted output.
//
// This interface supports both human-readable CLI output and structured
// logging, allowing seamless switching between the two.
type Logger interface {
	// Printf formats and prints a log message.
	Printf(format string, v ...any)
	// Println prints a log message with a newline.
	Println(v ...any)
	// Errorf formats and prints a diagnostic for a recovered or fatal failure.
	Errorf(format string, v ...any)
	// SetOutput sets the output destination for the logger.
	SetOutput(w io.Writer)
}

// CLILogger implements Logger using the standard log package.
// It's designed for command-line interface output with human-readable formatting.
type CLILogger struct{ logger *log.Logger }

// NewCLILogger creates a new CLI logger with timestamps disabled.
// This is suitable for user-facing CLI output.
func NewCLILogger() *CLILogger {
	l := log.New(os.Stdout, "", 0)
	return &CLILogger{logger: l}
}

// Printf formats and prints a log message using fmt.Printf semantics.
func (c *CLILogger) Printf(format string, v ...any) { c.logger.Printf(format, v...) }

// Println prints a log message with a newline.
func (c *CLILogger) Println(v ...any) { c.logger.Println(v...) }

// Errorf prints a diagnostic. The CLI logger does not distinguish levels;
// messages carry their own wording.
func (c *CLILogger) Errorf(format string, v ...any) { c.logger.Printf(format, v...) }

// SetOutput sets the output destination for the CLI logger.
func (c *CLILogger) SetOutput(w io.Writer) { c.logger.SetOutput(w) }

// ZapLogger implements Logger with a JSON [zap.Logger].
// Printf and Println log at info level, Errorf at error level.
//
// ZapLogger is safe for concurrent use by multiple goroutines.
type ZapLogger struct {
	mu     sync.Mutex
	level  zap.AtomicLevel
	logger *zap.Logger
	silent bool
}

// NewZapLogger creates a new structured logger writing JSON lines to writer.
// A nil writer discards output. When silent is true, nothing is written.
func NewZapLogger(writer io.Writer, silent bool) *ZapLogger {
	z := &ZapLogger{
		level:  zap.NewAtomicLevelAt(zap.InfoLevel),
		silent: silent,
	}
	z.logger = z.build(writer)
	return z
}

// build creates the zap logger for w.
func (z *ZapLogger) build(w io.Writer) *zap.Logger {
	if w == nil {
		w = io.Discard
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "time"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(zapcore.AddSync(w)),
		z.level,
	)
	return zap.New(core).Named("pki2include")
}

func (z *ZapLogger) current() *zap.Logger {
	z.mu.Lock()
	defer z.mu.Unlock()
	return z.logger
}

// Printf formats and logs a structured message at info level.
func (z *ZapLogger) Printf(format string, v ...any) {
	if z.silent {
		return
	}
	z.current().Info(fmt.Sprintf(format, v...))
}

// Println logs a structured message at info level.
func (z *ZapLogger) Println(v ...any) {
	if z.silent {
		return
	}
	z.current().Info(fmt.Sprint(v...))
}

// Errorf formats and logs a structured message at error level.
func (z *ZapLogger) Errorf(format string, v ...any) {
	if z.silent {
		return
	}
	z.current().Error(fmt.Sprintf(format, v...))
}

// SetLevel changes the minimum level that is written.
func (z *ZapLogger) SetLevel(l zapcore.Level) { z.level.SetLevel(l) }

// SetOutput sets the output destination for the structured logger.
// A nil writer discards output.
func (z *ZapLogger) SetOutput(w io.Writer) {
	z.mu.Lock()
	defer z.mu.Unlock()
	z.logger = z.build(w)
}

// Sync flushes buffered log entries.
func (z *ZapLogger) Sync() error { return z.current().Sync() }
