package sdk

import (
	"context"
	"time"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
)

// SecretsClient runs secret commands.
type SecretsClient struct {
	c *Client
}

// Create creates a secret, optionally attached to projects.
func (s *SecretsClient) Create(ctx context.Context, key, value, note, organizationID string, projectIDs []string) (*entities.SecretResponse, error) {
	return run[entities.SecretResponse](ctx, s.c, entities.Command{
		Secrets: &entities.SecretsCommand{
			Create: &entities.SecretCreateRequest{
				OrganizationID: organizationID,
				Key:            key,
				Value:          value,
				Note:           note,
				ProjectIDs:     projectIDs,
			},
		},
	})
}

// Get returns one secret with its value.
func (s *SecretsClient) Get(ctx context.Context, id string) (*entities.SecretResponse, error) {
	return run[entities.SecretResponse](ctx, s.c, entities.Command{
		Secrets: &entities.SecretsCommand{
			Get: &entities.SecretGetRequest{ID: id},
		},
	})
}

// GetByIDs returns several secrets with their values.
func (s *SecretsClient) GetByIDs(ctx context.Context, ids []string) (*entities.SecretsResponse, error) {
	return run[entities.SecretsResponse](ctx, s.c, entities.Command{
		Secrets: &entities.SecretsCommand{
			GetByIDs: &entities.SecretsGetRequest{IDs: ids},
		},
	})
}

// List returns the identifiers (id and key, no values) of the organization's
// secrets.
func (s *SecretsClient) List(ctx context.Context, organizationID string) (*entities.SecretIdentifiersResponse, error) {
	return run[entities.SecretIdentifiersResponse](ctx, s.c, entities.Command{
		Secrets: &entities.SecretsCommand{
			List: &entities.SecretIdentifiersRequest{OrganizationID: organizationID},
		},
	})
}

// Update replaces a secret's key, value, note and projects.
func (s *SecretsClient) Update(ctx context.Context, id, key, value, note, organizationID string, projectIDs []string) (*entities.SecretResponse, error) {
	return run[entities.SecretResponse](ctx, s.c, entities.Command{
		Secrets: &entities.SecretsCommand{
			Update: &entities.SecretPutRequest{
				ID:             id,
				OrganizationID: organizationID,
				Key:            key,
				Value:          value,
				Note:           note,
				ProjectIDs:     projectIDs,
			},
		},
	})
}

// Delete deletes secrets. Per-item failures are reported in the response.
func (s *SecretsClient) Delete(ctx context.Context, ids []string) (*entities.SecretsDeleteResponse, error) {
	return run[entities.SecretsDeleteResponse](ctx, s.c, entities.Command{
		Secrets: &entities.SecretsCommand{
			Delete: &entities.SecretsDeleteRequest{IDs: ids},
		},
	})
}

// Sync returns the organization's secrets if any changed since lastSynced.
// A nil lastSynced always returns every secret.
func (s *SecretsClient) Sync(ctx context.Context, organizationID string, lastSynced *time.Time) (*entities.SecretsSyncResponse, error) {
	return run[entities.SecretsSyncResponse](ctx, s.c, entities.Command{
		Secrets: &entities.SecretsCommand{
			Sync: &entities.SecretsSyncRequest{OrganizationID: organizationID, LastSyncedDate: lastSynced},
		},
	})
}
