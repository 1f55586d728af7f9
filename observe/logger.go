package observe

import (
	"context"
	"io"
	"log/slog"
	"os"
	"time"
)

// LogLevel represents a logging level.
type LogLevel int

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

// ParseLogLevel parses a string log level. Unknown values map to info.
func ParseLogLevel(s string) LogLevel {
	switch s {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "info"
	}
}

func (l LogLevel) slogLevel() slog.Level {
	switch l {
	case LevelDebug:
		return slog.LevelDebug
	case LevelWarn:
		return slog.LevelWarn
	case LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// structuredLogger writes one JSON object per entry through log/slog.
type structuredLogger struct {
	slog *slog.Logger
}

// NewLogger creates a structured logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a structured logger with a custom writer.
//
// Entries carry timestamp, level and msg keys followed by fields. Values of
// sensitive keys (see RedactedFields) are replaced with "[REDACTED]".
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:       ParseLogLevel(level).slogLevel(),
		ReplaceAttr: replaceAttr,
	})
	return &structuredLogger{slog: slog.New(h)}
}

// Slog exposes the underlying slog.Logger, e.g. for http.Server.ErrorLog.
func (l *structuredLogger) Slog() *slog.Logger {
	return l.slog
}

// With returns a logger that adds fields to every entry.
func (l *structuredLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return l
	}
	return &structuredLogger{slog: l.slog.With(toArgs(fields)...)}
}

// WithOperation returns a logger carrying operation context.
func (l *structuredLogger) WithOperation(op Operation) Logger {
	fields := []Field{
		{Key: "operation.id", Value: op.ID()},
		{Key: "operation.name", Value: op.Name},
	}
	if op.Component != "" {
		fields = append(fields, Field{Key: "operation.component", Value: op.Component})
	}
	if op.Version != "" {
		fields = append(fields, Field{Key: "operation.version", Value: op.Version})
	}
	return l.With(fields...)
}

func (l *structuredLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelInfo, msg, fields)
}

func (l *structuredLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelWarn, msg, fields)
}

func (l *structuredLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelError, msg, fields)
}

func (l *structuredLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.log(ctx, slog.LevelDebug, msg, fields)
}

func (l *structuredLogger) log(ctx context.Context, level slog.Level, msg string, fields []Field) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !l.slog.Enabled(ctx, level) {
		return
	}
	l.slog.Log(ctx, level, msg, toArgs(fields)...)
}

func toArgs(fields []Field) []any {
	args := make([]any, 0, len(fields))
	for _, f := range fields {
		args = append(args, slog.Any(f.Key, f.Value))
	}
	return args
}

// replaceAttr renames slog's builtin keys and applies redaction.
func replaceAttr(groups []string, a slog.Attr) slog.Attr {
	if len(groups) == 0 {
		switch a.Key {
		case slog.TimeKey:
			return slog.String("timestamp", a.Value.Time().UTC().Format(time.RFC3339Nano))
		case slog.LevelKey:
			lvl, _ := a.Value.Any().(slog.Level)
			return slog.String("level", levelName(lvl))
		}
	}
	if isRedactedField(a.Key) {
		return slog.String(a.Key, "[REDACTED]")
	}
	return a
}

func levelName(l slog.Level) string {
	switch {
	case l < slog.LevelInfo:
		return "debug"
	case l < slog.LevelWarn:
		return "info"
	case l < slog.LevelError:
		return "warn"
	default:
		return "error"
	}
}

// RedactedFields lists field keys whose values are never written to logs.
var RedactedFields = []string{
	"password",
	"secret",
	"token",
	"api_key",
	"apiKey",
	"authorization",
	"credential",
	"jwt_secret",
}

var redactedKeys = func() map[string]bool {
	m := make(map[string]bool, len(RedactedFields))
	for _, k := range RedactedFields {
		m[k] = true
	}
	return m
}()

// isRedactedField returns true if the field should be redacted.
func isRedactedField(key string) bool {
	return redactedKeys[key]
}

// SlogProvider is implemented by loggers backed by log/slog.
type SlogProvider interface {
	Slog() *slog.Logger
}

// Ensure structuredLogger implements Logger and SlogProvider
var (
	_ Logger       = (*structuredLogger)(nil)
	_ SlogProvider = (*structuredLogger)(nil)
)
