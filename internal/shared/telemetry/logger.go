package telemetry

import (
	"io"
	"os"
	"sort"
	"strings"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
)

var current atomic.Pointer[log.Logger]

func init() {
	current.Store(New(os.Stdout, log.InfoLevel))
}

// New returns a JSON line logger writing to w at level.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.RFC3339,
		Level:           level,
		Formatter:       log.JSONFormatter,
	})
}

// Configure replaces the process logger. Unknown level names fall back to info.
func Configure(w io.Writer, level string) {
	lvl, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		lvl = log.InfoLevel
	}
	current.Store(New(w, lvl))
}

// Logger returns the process logger.
func Logger() *log.Logger { return current.Load() }

// Debug writes a debug-level log line with the given fields.
func Debug(msg string, fields map[string]any) {
	Logger().Debug(msg, keyvals(fields)...)
}

// Info writes an info-level log line with the given fields.
func Info(msg string, fields map[string]any) {
	Logger().Info(msg, keyvals(fields)...)
}

// Warn writes a warn-level log line with the given fields.
func Warn(msg string, fields map[string]any) {
	Logger().Warn(msg, keyvals(fields)...)
}

// Error writes an error-level log line with the given fields.
func Error(msg string, fields map[string]any) {
	Logger().Error(msg, keyvals(fields)...)
}

// keyvals flattens fields in key order so log lines are stable.
func keyvals(fields map[string]any) []any {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]any, 0, len(fields)*2)
	for _, k := range keys {
		out = append(out, k, fields[k])
	}
	return out
}
