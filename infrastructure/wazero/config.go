package wazero

import "log/slog"

// DefaultMaxRequestSize is the largest command, in bytes, sent to the guest.
const DefaultMaxRequestSize = 16 << 20

// Config holds configuration for the WASM library.
type Config struct {
	// Logger receives guest log records. Default is slog.Default().
	Logger *slog.Logger

	// ModuleName is the name the guest is instantiated under (default: "bitwarden").
	ModuleName string

	// HostModuleName is the import module providing log_message (default: "sm_host").
	HostModuleName string

	// MaxRequestSize limits the size of commands and settings written into
	// guest memory.
	MaxRequestSize uint32

	// MemoryLimitPages caps guest memory in 64 KiB pages. Zero keeps the
	// wazero default.
	MemoryLimitPages uint32
}

// Option configures the library.
type Option func(*Config)

// WithLogger sets the logger guest log records are written to.
func WithLogger(l *slog.Logger) Option {
	return func(c *Config) {
		c.Logger = l
	}
}

// WithModuleName sets the guest module name.
func WithModuleName(name string) Option {
	return func(c *Config) {
		c.ModuleName = name
	}
}

// WithHostModuleName sets the host module name the guest imports from.
func WithHostModuleName(name string) Option {
	return func(c *Config) {
		c.HostModuleName = name
	}
}

// WithMaxRequestSize sets the maximum request size written to guest memory.
func WithMaxRequestSize(size uint32) Option {
	return func(c *Config) {
		c.MaxRequestSize = size
	}
}

// WithMemoryLimitPages caps guest memory.
func WithMemoryLimitPages(pages uint32) Option {
	return func(c *Config) {
		c.MemoryLimitPages = pages
	}
}

func defaultConfig() Config {
	return Config{
		ModuleName:     "bitwarden",
		HostModuleName: "sm_host",
		MaxRequestSize: DefaultMaxRequestSize,
	}
}
