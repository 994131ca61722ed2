package ports

import "context"

// Handle is an opaque reference to a client living inside the library. The SDK
// never interprets it; it is handed back to the library unchanged.
type Handle uintptr

// Library is the entry point of the Secrets Manager library. Requests and
// responses are JSON text.
type Library interface {
	// Init creates a client from JSON-encoded ClientSettings.
	Init(ctx context.Context, settings string) (Handle, error)

	// RunCommand executes one JSON-encoded Command against the client and
	// returns the JSON-encoded Response.
	RunCommand(ctx context.Context, command string, h Handle) (string, error)

	// Free releases the client behind h.
	Free(ctx context.Context, h Handle) error

	// Close releases the library itself. Handles must be freed first.
	Close(ctx context.Context) error
}
