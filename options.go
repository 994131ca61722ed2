package sdk

import (
	"log/slog"

	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
)

type clientConfig struct {
	lib       ports.Library
	logger    *slog.Logger
	validator ports.RequestValidator
	validate  bool
}

// Option configures a Client.
type Option func(*clientConfig)

// WithLibrary sets the library entry point. The client takes ownership and
// closes it on Close.
func WithLibrary(lib ports.Library) Option {
	return func(c *clientConfig) {
		c.lib = lib
	}
}

// WithLogger sets the logger. Default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithValidator replaces the request validator.
func WithValidator(v ports.RequestValidator) Option {
	return func(c *clientConfig) {
		c.validator = v
		c.validate = v != nil
	}
}

// WithoutValidation sends requests to the library unchecked.
func WithoutValidation() Option {
	return func(c *clientConfig) {
		c.validator = nil
		c.validate = false
	}
}
