//go:build cgo && sdknative

package native

/*
#cgo LDFLAGS: -lbitwarden_c
#cgo linux LDFLAGS: -ldl -lm
#cgo darwin LDFLAGS: -framework Security -framework SystemConfiguration
#include <stdlib.h>

typedef void* ClientPtr;

extern ClientPtr init(const char* settings);
extern char* run_command(const char* command, ClientPtr client);
extern void free_mem(ClientPtr client);
*/
import "C"

import (
	"errors"
	"sync"
	"unsafe"

	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
)

var errNullResult = errors.New("run_command returned null")

var (
	mu   sync.Mutex
	next Client = 1
	reg         = map[Client]C.ClientPtr{}
)

func put(p C.ClientPtr) Client {
	mu.Lock()
	c := next
	next++
	reg[c] = p
	mu.Unlock()
	return c
}

func get(c Client) (C.ClientPtr, bool) {
	mu.Lock()
	p, ok := reg[c]
	mu.Unlock()
	return p, ok
}

func take(c Client) (C.ClientPtr, bool) {
	mu.Lock()
	p, ok := reg[c]
	delete(reg, c)
	mu.Unlock()
	return p, ok
}

// Init creates a library client from JSON-encoded settings.
func Init(settings string) (Client, error) {
	cs := C.CString(settings)
	defer C.free(unsafe.Pointer(cs))

	p := C.init(cs)
	if p == nil {
		return 0, sdkerrors.ErrNilHandle
	}
	return put(p), nil
}

// RunCommand executes a JSON-encoded command and returns the JSON response.
func RunCommand(command string, c Client) (string, error) {
	p, ok := get(c)
	if !ok {
		return "", errUnknownClient(c)
	}

	cs := C.CString(command)
	defer C.free(unsafe.Pointer(cs))

	res := C.run_command(cs, p)
	if res == nil {
		return "", errNullResult
	}
	// The ABI has no string-release export; free_mem only takes a client.
	// The library hands back a NUL-terminated buffer from the system
	// allocator, so it is released with free(3).
	defer C.free(unsafe.Pointer(res))

	return C.GoString(res), nil
}

// Free releases the client. Freeing an unknown client is an error.
func Free(c Client) error {
	p, ok := take(c)
	if !ok {
		return errUnknownClient(c)
	}
	C.free_mem(p)
	return nil
}
