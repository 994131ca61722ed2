// Package native adapts the cgo binding of the Secrets Manager C library to
// ports.Library.
package native

import (
	"context"
	"errors"

	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
	"github.com/reglet-dev/secrets-sdk/go/internal/native"
)

// Library calls the C library linked into the binary. It holds no state of
// its own; clients live inside the C library.
type Library struct{}

// NewLibrary returns the native library, or ErrNotBuilt when the binary was
// compiled without it.
func NewLibrary() (*Library, error) {
	if !Available() {
		return nil, &sdkerrors.LibraryError{Operation: "load", Err: sdkerrors.ErrNotBuilt}
	}
	return &Library{}, nil
}

// Available reports whether the C library was linked in.
func Available() bool {
	_, err := native.RunCommand("", 0)
	return !errors.Is(err, native.ErrNotBuilt)
}

// Init implements ports.Library.
func (l *Library) Init(ctx context.Context, settings string) (ports.Handle, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	c, err := native.Init(settings)
	if err != nil {
		return 0, &sdkerrors.LibraryError{Operation: "init", Err: err}
	}
	return ports.Handle(c), nil
}

// RunCommand implements ports.Library. The C call blocks until the library
// answers and cannot be canceled.
func (l *Library) RunCommand(ctx context.Context, command string, h ports.Handle) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	res, err := native.RunCommand(command, native.Client(h))
	if err != nil {
		return "", &sdkerrors.LibraryError{Operation: "run_command", Err: err}
	}
	return res, nil
}

// Free implements ports.Library.
func (l *Library) Free(_ context.Context, h ports.Handle) error {
	if err := native.Free(native.Client(h)); err != nil {
		return &sdkerrors.LibraryError{Operation: "free_mem", Err: err}
	}
	return nil
}

// Close implements ports.Library. The C library stays loaded for the life of
// the process.
func (l *Library) Close(context.Context) error {
	return nil
}

var _ ports.Library = (*Library)(nil)
