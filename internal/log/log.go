// Package log provides logging output.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
)

var (
	// DefaultLogger returns the default, global logger. Components call it
	// during startup and cache the result; the default does not change at
	// runtime.
	DefaultLogger = func() *Logger { return NewFormattedLogger(os.Stderr) }

	// SetDefault overrides the log/slog package's default logger. It does
	// not affect DefaultLogger.
	SetDefault = slog.SetDefault

	// LogLevel is a variable holding the log level. It can be changed at
	// runtime.
	LogLevel = &slog.LevelVar{}
)

// NewFormattedLogger returns a logger that uses a Handler to format and write
// records to a writer.
func NewFormattedLogger(out io.Writer) *Logger {
	return slog.New(NewHandler(out))
}

// Handler implements slog.Handler. Records render one per line:
//
//	15:04:05.000 INFO  message ATTR=value ATTR=value
type Handler struct {
	mut *sync.Mutex // Synchronizes writer.
	out io.Writer

	opts  *slog.HandlerOptions
	attrs []Attr
}

// Options for log handlers.
var Options = &slog.HandlerOptions{
	Level: LogLevel,
}

// NewHandler creates and initializes a Handler with a writer.
func NewHandler(out io.Writer) *Handler {
	return &Handler{
		out:  out,
		mut:  new(sync.Mutex),
		opts: Options,
	}
}

// Enabled returns true if the level is at or above the current logging level.
func (h *Handler) Enabled(_ context.Context, level Level) bool {
	return level >= h.opts.Level.Level()
}

// Handle formats and writes a log record to the handler's writer.
func (h *Handler) Handle(_ context.Context, rec slog.Record) error {
	b := strings.Builder{}

	if !rec.Time.IsZero() {
		b.WriteString(rec.Time.Format("15:04:05.000"))
		b.WriteByte(' ')
	}

	fmt.Fprintf(&b, "%-5s %s", rec.Level.String(), rec.Message)

	for _, attr := range h.attrs {
		appendAttr(&b, attr)
	}

	rec.Attrs(func(attr Attr) bool {
		appendAttr(&b, attr)
		return true
	})

	b.WriteByte('\n')

	h.mut.Lock()
	defer h.mut.Unlock()

	_, err := io.WriteString(h.out, b.String())

	return err
}

// WithAttrs returns a new handler that combines the handler's attributes and
// those in the argument.
func (h *Handler) WithAttrs(attrs []Attr) slog.Handler {
	as := make([]Attr, 0, len(h.attrs)+len(attrs))
	as = append(as, h.attrs...)
	as = append(as, attrs...)

	return &Handler{
		out:   h.out,
		mut:   h.mut,
		opts:  h.opts,
		attrs: as,
	}
}

// WithGroup returns a copy of the handler with the same attributes. The group
// name is not recorded: subsequent attribute keys are not prefixed with it.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	attrs := make([]Attr, len(h.attrs))
	copy(attrs, h.attrs)

	return &Handler{
		out:   h.out,
		mut:   h.mut,
		opts:  h.opts,
		attrs: attrs,
	}
}

func appendAttr(b *strings.Builder, attr Attr) {
	attr.Value = attr.Value.Resolve()

	if attr.Equal(Attr{}) {
		return
	}

	if attr.Value.Kind() == slog.KindGroup {
		for _, a := range attr.Value.Group() {
			appendAttr(b, a)
		}

		return
	}

	fmt.Fprintf(b, " %s=%v", strings.ToUpper(attr.Key), attr.Value.Any())
}

// Type aliases from the std lib.
type (
	Attr   = slog.Attr
	Level  = slog.Level
	Logger = slog.Logger
	Value  = slog.Value
)

var (
	String = slog.String
	Group  = slog.Group
	Any    = slog.Any
)

// Logging levels.
const (
	Debug = slog.LevelDebug
	Info  = slog.LevelInfo
	Warn  = slog.LevelWarn
	Error = slog.LevelError
)
