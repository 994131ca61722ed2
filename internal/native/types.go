// Package native binds the Secrets Manager C library. The real binding is
// compiled only with cgo and the sdknative build tag; every other build gets
// a stub whose functions return ErrNotBuilt.
package native

import (
	"fmt"

	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
)

// ErrNotBuilt is returned by the stub build.
var ErrNotBuilt = sdkerrors.ErrNotBuilt

// Client is a registry key standing in for a C client pointer. Zero is never
// issued.
type Client uintptr

func errUnknownClient(c Client) error {
	return fmt.Errorf("unknown client %#x", uintptr(c))
}
