package sdk

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/reglet-dev/secrets-sdk/go/application/runner"
	"github.com/reglet-dev/secrets-sdk/go/application/validation"
	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
	"github.com/reglet-dev/secrets-sdk/go/infrastructure/native"
	"github.com/reglet-dev/secrets-sdk/go/wireformat"
)

// Client is a Secrets Manager client. It is safe for concurrent use; the
// library serializes calls on its side.
type Client struct {
	lib      ports.Library
	runner   *runner.Runner
	logger   *slog.Logger
	projects *ProjectsClient
	secrets  *SecretsClient

	mu     sync.RWMutex
	closed bool
}

// NewClient creates a library client from settings. A nil settings uses the
// public cloud defaults; empty fields are filled with defaults.
func NewClient(ctx context.Context, settings *entities.ClientSettings, opts ...Option) (*Client, error) {
	cfg := clientConfig{validate: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.validate && cfg.validator == nil {
		cfg.validator = validation.NewValidator()
	}

	var s entities.ClientSettings
	if settings != nil {
		s = *settings
	}
	s = s.WithDefaults()

	if cfg.validator != nil {
		if err := cfg.validator.Validate(s); err != nil {
			return nil, &sdkerrors.ConfigError{Field: "settings", Err: err}
		}
	}

	lib := cfg.lib
	if lib == nil {
		nl, err := native.NewLibrary()
		if err != nil {
			return nil, err
		}
		lib = nl
	}

	raw, err := wireformat.EncodeSettings(s)
	if err != nil {
		return nil, err
	}

	h, err := lib.Init(ctx, raw)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, &sdkerrors.LibraryError{Operation: "init", Err: sdkerrors.ErrNilHandle}
	}

	ropts := []runner.Option{runner.WithLogger(cfg.logger)}
	if cfg.validator != nil {
		ropts = append(ropts, runner.WithValidator(cfg.validator))
	}

	c := &Client{
		lib:    lib,
		runner: runner.New(lib, h, ropts...),
		logger: cfg.logger,
	}
	c.projects = &ProjectsClient{c: c}
	c.secrets = &SecretsClient{c: c}

	cfg.logger.DebugContext(ctx, "client initialized", "api_url", s.APIURL, "identity_url", s.IdentityURL)
	return c, nil
}

// Projects returns the project operations.
func (c *Client) Projects() *ProjectsClient {
	return c.projects
}

// Secrets returns the secret operations.
func (c *Client) Secrets() *SecretsClient {
	return c.secrets
}

// Handle returns the library client handle.
func (c *Client) Handle() ports.Handle {
	return c.runner.Handle()
}

// Close frees the library client and closes the library. Calling Close more
// than once is a no-op; every other method returns ErrClientClosed afterwards.
func (c *Client) Close(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	return errors.Join(
		c.lib.Free(ctx, c.runner.Handle()),
		c.lib.Close(ctx),
	)
}

// run holds the read lock for the duration of the call so Close waits for
// in-flight commands.
func run[T any](ctx context.Context, c *Client, cmd entities.Command) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, sdkerrors.ErrClientClosed
	}
	return runner.Run[T](ctx, c.runner, cmd)
}
