// Package runner implements the command round trip: serialize the command,
// invoke the library entry point with the client handle, and decode the
// response envelope.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
	"github.com/reglet-dev/secrets-sdk/go/wireformat"
)

// Runner sends commands to one library client.
type Runner struct {
	lib       ports.Library
	validator ports.RequestValidator
	logger    *slog.Logger
	handle    ports.Handle
}

// Option configures a Runner.
type Option func(*Runner)

// WithValidator checks every command before it is sent.
func WithValidator(v ports.RequestValidator) Option {
	return func(r *Runner) {
		r.validator = v
	}
}

// WithLogger sets the logger used for per-command debug records.
func WithLogger(l *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = l
	}
}

// New returns a Runner bound to the client behind h.
func New(lib ports.Library, h ports.Handle, opts ...Option) *Runner {
	r := &Runner{lib: lib, handle: h}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// Handle returns the client handle the runner is bound to.
func (r *Runner) Handle() ports.Handle {
	return r.handle
}

// RunCommand implements ports.CommandRunner. The library call itself cannot be
// interrupted; ctx is only checked before it starts.
func (r *Runner) RunCommand(ctx context.Context, cmd entities.Command) ([]byte, error) {
	if err := cmd.Check(); err != nil {
		return nil, fmt.Errorf("invalid command: %w", err)
	}
	name := cmd.Name()

	if r.validator != nil {
		if err := r.validator.Validate(cmd); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}

	req, err := wireformat.EncodeCommand(cmd)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	start := time.Now()
	resp, err := r.lib.RunCommand(ctx, req, r.handle)
	elapsed := time.Since(start)
	if err != nil {
		r.logger.DebugContext(ctx, "command failed", "command", name, "duration", elapsed, "error", err)
		return nil, libraryError(err)
	}

	r.logger.DebugContext(ctx, "command completed", "command", name, "duration", elapsed, "response_bytes", len(resp))
	return []byte(resp), nil
}

// libraryError labels err as a run_command failure unless the library already
// did, or it is a context error.
func libraryError(err error) error {
	var libErr *sdkerrors.LibraryError
	if errors.As(err, &libErr) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return &sdkerrors.LibraryError{Operation: "run_command", Err: err}
}

// Run sends cmd through cr and decodes the payload. A response with
// success=false becomes a *CommandError; a successful response without data
// yields a zero T.
func Run[T any](ctx context.Context, cr ports.CommandRunner, cmd entities.Command) (*T, error) {
	raw, err := cr.RunCommand(ctx, cmd)
	if err != nil {
		return nil, err
	}

	resp, err := wireformat.DecodeResponse[T](raw)
	if err != nil {
		return nil, err
	}

	if !resp.Success {
		return nil, &sdkerrors.CommandError{Command: cmd.Name(), Message: resp.Message()}
	}

	if resp.Data == nil {
		return new(T), nil
	}
	return resp.Data, nil
}

var _ ports.CommandRunner = (*Runner)(nil)
