package sdk

import (
	"context"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
)

// ProjectsClient runs project commands.
type ProjectsClient struct {
	c *Client
}

// Create creates a project in the organization.
func (p *ProjectsClient) Create(ctx context.Context, organizationID, name string) (*entities.ProjectResponse, error) {
	return run[entities.ProjectResponse](ctx, p.c, entities.Command{
		Projects: &entities.ProjectsCommand{
			Create: &entities.ProjectCreateRequest{OrganizationID: organizationID, Name: name},
		},
	})
}

// Get returns one project.
func (p *ProjectsClient) Get(ctx context.Context, id string) (*entities.ProjectResponse, error) {
	return run[entities.ProjectResponse](ctx, p.c, entities.Command{
		Projects: &entities.ProjectsCommand{
			Get: &entities.ProjectGetRequest{ID: id},
		},
	})
}

// List returns the projects of the organization visible to the client.
func (p *ProjectsClient) List(ctx context.Context, organizationID string) (*entities.ProjectsResponse, error) {
	return run[entities.ProjectsResponse](ctx, p.c, entities.Command{
		Projects: &entities.ProjectsCommand{
			List: &entities.ProjectsListRequest{OrganizationID: organizationID},
		},
	})
}

// Update renames a project.
func (p *ProjectsClient) Update(ctx context.Context, id, organizationID, name string) (*entities.ProjectResponse, error) {
	return run[entities.ProjectResponse](ctx, p.c, entities.Command{
		Projects: &entities.ProjectsCommand{
			Update: &entities.ProjectPutRequest{ID: id, OrganizationID: organizationID, Name: name},
		},
	})
}

// Delete deletes projects. Per-item failures are reported in the response,
// not as an error.
func (p *ProjectsClient) Delete(ctx context.Context, ids []string) (*entities.ProjectsDeleteResponse, error) {
	return run[entities.ProjectsDeleteResponse](ctx, p.c, entities.Command{
		Projects: &entities.ProjectsCommand{
			Delete: &entities.ProjectsDeleteRequest{IDs: ids},
		},
	})
}
