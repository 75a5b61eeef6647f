package observe

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
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

var levelNames = [...]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// ParseLogLevel parses a level name. Unknown names map to LevelInfo.
func ParseLogLevel(s string) LogLevel {
	for l, name := range levelNames {
		if name == s {
			return LogLevel(l)
		}
	}
	return LevelInfo
}

func (l LogLevel) String() string {
	if l < LevelDebug || l > LevelError {
		return levelNames[LevelInfo]
	}
	return levelNames[l]
}

// jsonLogger writes one JSON object per line. Children created by
// WithCascade share the parent's writer and lock.
type jsonLogger struct {
	level LogLevel
	out   *lockedWriter
	base  []Field
}

type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (lw *lockedWriter) writeLine(line []byte) {
	lw.mu.Lock()
	defer lw.mu.Unlock()
	_, _ = lw.w.Write(append(line, '\n'))
}

// NewLogger creates a logger writing to stderr.
func NewLogger(level string) Logger {
	return NewLoggerWithWriter(level, os.Stderr)
}

// NewLoggerWithWriter creates a logger writing to w.
func NewLoggerWithWriter(level string, w io.Writer) Logger {
	return &jsonLogger{level: ParseLogLevel(level), out: &lockedWriter{w: w}}
}

func (l *jsonLogger) WithCascade(meta CascadeMeta) Logger {
	base := make([]Field, 0, len(l.base)+4)
	base = append(base, l.base...)
	base = append(base, meta.fields()...)
	return &jsonLogger{level: l.level, out: l.out, base: base}
}

func (l *jsonLogger) Debug(ctx context.Context, msg string, fields ...Field) {
	l.write(ctx, LevelDebug, msg, fields)
}

func (l *jsonLogger) Info(ctx context.Context, msg string, fields ...Field) {
	l.write(ctx, LevelInfo, msg, fields)
}

func (l *jsonLogger) Warn(ctx context.Context, msg string, fields ...Field) {
	l.write(ctx, LevelWarn, msg, fields)
}

func (l *jsonLogger) Error(ctx context.Context, msg string, fields ...Field) {
	l.write(ctx, LevelError, msg, fields)
}

func (l *jsonLogger) write(_ context.Context, level LogLevel, msg string, fields []Field) {
	if level < l.level {
		return
	}

	entry := map[string]any{
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
		"level":     level.String(),
		"msg":       msg,
	}
	for _, group := range [2][]Field{l.base, fields} {
		for _, f := range group {
			if err, ok := f.Value.(error); ok {
				entry[f.Key] = err.Error()
			} else {
				entry[f.Key] = f.Value
			}
		}
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	l.out.writeLine(line)
}

var _ Logger = (*jsonLogger)(nil)
