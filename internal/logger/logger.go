package logger

import (
	"fmt"
	"log/slog"
	"os"
)

// Logger is a thin wrapper around slog that carries component/function
// context and can mint errors at the logging site.
type Logger struct {
	log *slog.Logger
}

func New(component string) Logger {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	})
	return Logger{
		log: slog.New(handler).With("component", component),
	}
}

// Function returns a child logger tagged with the function name.
func (l Logger) Function(name string) Logger {
	return Logger{log: l.log.With("function", name)}
}

// File returns a child logger tagged with the source file name.
func (l Logger) File(name string) Logger {
	return Logger{log: l.log.With("file", name)}
}

func (l Logger) Debug(msg string, args ...any) {
	l.log.Debug(msg, args...)
}

func (l Logger) Info(msg string, args ...any) {
	l.log.Info(msg, args...)
}

func (l Logger) Warn(msg string, args ...any) {
	l.log.Warn(msg, args...)
}

// Error logs msg and returns it as an error.
func (l Logger) Error(msg string, args ...any) error {
	l.log.Error(msg, args...)
	return fmt.Errorf("%s", msg)
}

// ErrMsg is Error without structured args.
func (l Logger) ErrMsg(msg string) error {
	l.log.Error(msg)
	return fmt.Errorf("%s", msg)
}

// Err logs msg with the underlying error and returns a wrapped error.
func (l Logger) Err(msg string, err error, args ...any) error {
	l.log.Error(msg, append(args, "error", err)...)
	return fmt.Errorf("%s: %w", msg, err)
}

// Er logs msg with the underlying error without returning anything. For
// paths that only report, e.g. deferred cleanup.
func (l Logger) Er(msg string, err error, args ...any) {
	l.log.Error(msg, append(args, "error", err)...)
}

// ErMsg logs an error-level message without returning anything.
func (l Logger) ErMsg(msg string, args ...any) {
	l.log.Error(msg, args...)
}
