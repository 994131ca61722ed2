package ports

import (
	"context"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
)

// CommandRunner executes commands against an initialized client.
type CommandRunner interface {
	// RunCommand sends cmd and returns the raw JSON response envelope.
	RunCommand(ctx context.Context, cmd entities.Command) ([]byte, error)
}
