package log

import (
	"context"
	"io"
	"log/slog"
	"strings"

	charm "github.com/charmbracelet/log"
	"github.com/samber/lo"
)

type contextKey struct{}

var discardLogger = New(io.Discard, Options{Format: FormatJSON})

const (
	FormatJSON = "json"
	FormatText = "text"
)

type Options struct {
	Format string
	Level  string
}

// New builds a logger writing to w. JSON output drops the time key so lines
// stay diffable; text output is meant for a human at a terminal.
func New(w io.Writer, opts Options) *slog.Logger {
	level := ParseLevel(opts.Level)
	if strings.EqualFold(opts.Format, FormatText) {
		handler := charm.NewWithOptions(w, charm.Options{
			Level:           charm.Level(level),
			ReportTimestamp: true,
		})
		return slog.New(handler)
	}
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
			return lo.Ternary(a.Key == slog.TimeKey, slog.Attr{}, a)
		},
	}))
}

func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func NewContext(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

func FromContextOrDiscard(ctx context.Context) *slog.Logger {
	if v, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return v
	}
	return discardLogger
}
