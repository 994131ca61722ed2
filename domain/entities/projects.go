package entities

import "time"

// ProjectGetRequest retrieves a project by ID.
type ProjectGetRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// ProjectCreateRequest creates a project in an organization.
type ProjectCreateRequest struct {
	OrganizationID string `json:"organizationId" validate:"required,uuid"`
	Name           string `json:"name" validate:"required"`
}

// ProjectsListRequest lists all projects of an organization.
type ProjectsListRequest struct {
	OrganizationID string `json:"organizationId" validate:"required,uuid"`
}

// ProjectPutRequest renames an existing project.
type ProjectPutRequest struct {
	ID             string `json:"id" validate:"required,uuid"`
	OrganizationID string `json:"organizationId" validate:"required,uuid"`
	Name           string `json:"name" validate:"required"`
}

// ProjectsDeleteRequest deletes every project whose ID is listed.
type ProjectsDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// ProjectResponse describes a single project.
type ProjectResponse struct {
	CreationDate   time.Time `json:"creationDate"`
	RevisionDate   time.Time `json:"revisionDate"`
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Name           string    `json:"name"`
}

// ProjectsResponse is the payload of projects.list.
type ProjectsResponse struct {
	Data []ProjectResponse `json:"data"`
}

// ProjectsDeleteResponse reports the per-ID outcome of projects.delete.
type ProjectsDeleteResponse struct {
	Data []DeleteItemResponse `json:"data"`
}

// DeleteItemResponse is the outcome for one deleted ID. Error is set when the
// library could not delete that item.
type DeleteItemResponse struct {
	Error *string `json:"error,omitempty"`
	ID    string  `json:"id"`
}
