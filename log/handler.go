// Package log builds the slog handlers used by the SDK and its CLI. Handlers
// redact attributes that can carry secret material.
package log

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const redactedPlaceholder = "[redacted]"

// Format selects the handler encoding.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// SensitiveKeys are redacted by every handler built here.
var SensitiveKeys = []string{"accessToken", "access_token", "value", "note", "stateFile", "state_file"}

// HandlerOption configures NewHandler.
type HandlerOption func(*handlerConfig)

type handlerConfig struct {
	w         io.Writer
	format    Format
	redact    map[string]struct{}
	level     slog.Leveler
	addSource bool
}

func defaultHandlerConfig() handlerConfig {
	cfg := handlerConfig{
		w:      os.Stderr,
		format: FormatText,
		level:  slog.LevelInfo,
		redact: make(map[string]struct{}, len(SensitiveKeys)),
	}
	for _, k := range SensitiveKeys {
		cfg.redact[strings.ToLower(k)] = struct{}{}
	}
	return cfg
}

// WithLevel sets the minimum log level to report.
func WithLevel(level slog.Leveler) HandlerOption {
	return func(c *handlerConfig) {
		c.level = level
	}
}

// WithSource enables reporting of source location (file/line).
func WithSource(enabled bool) HandlerOption {
	return func(c *handlerConfig) {
		c.addSource = enabled
	}
}

// WithFormat selects text or JSON output.
func WithFormat(f Format) HandlerOption {
	return func(c *handlerConfig) {
		c.format = f
	}
}

// WithWriter sets the output. Default is stderr.
func WithWriter(w io.Writer) HandlerOption {
	return func(c *handlerConfig) {
		c.w = w
	}
}

// WithRedactedKeys adds attribute keys to redact.
func WithRedactedKeys(keys ...string) HandlerOption {
	return func(c *handlerConfig) {
		for _, k := range keys {
			c.redact[strings.ToLower(k)] = struct{}{}
		}
	}
}

// NewHandler returns a text or JSON handler with redaction applied.
func NewHandler(opts ...HandlerOption) slog.Handler {
	cfg := defaultHandlerConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	hopts := &slog.HandlerOptions{
		Level:       cfg.level,
		AddSource:   cfg.addSource,
		ReplaceAttr: redactor(cfg.redact),
	}
	if cfg.format == FormatJSON {
		return slog.NewJSONHandler(cfg.w, hopts)
	}
	return slog.NewTextHandler(cfg.w, hopts)
}

// New returns a logger over NewHandler.
func New(opts ...HandlerOption) *slog.Logger {
	return slog.New(NewHandler(opts...))
}

// Redacted marks an attribute whose value was intentionally left out.
func Redacted(key string) slog.Attr {
	return slog.String(key, redactedPlaceholder)
}

// ParseLevel accepts debug, info, warn and error in any case.
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q", s)
	}
	return l, nil
}

// ParseFormat accepts text and json.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return FormatText, fmt.Errorf("invalid log format %q", s)
	}
}

func redactor(keys map[string]struct{}) func([]string, slog.Attr) slog.Attr {
	return func(_ []string, a slog.Attr) slog.Attr {
		if a.Value.Kind() == slog.KindGroup {
			return a
		}
		if _, ok := keys[strings.ToLower(a.Key)]; ok {
			return Redacted(a.Key)
		}
		return a
	}
}
