package entities

import "time"

// SecretGetRequest retrieves a secret by ID.
type SecretGetRequest struct {
	ID string `json:"id" validate:"required,uuid"`
}

// SecretsGetRequest retrieves several secrets at once.
type SecretsGetRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// SecretCreateRequest creates a secret in an organization.
type SecretCreateRequest struct {
	OrganizationID string   `json:"organizationId" validate:"required,uuid"`
	Key            string   `json:"key" validate:"required"`
	Value          string   `json:"value"`
	Note           string   `json:"note"`
	ProjectIDs     []string `json:"projectIds,omitempty" validate:"omitempty,dive,uuid"`
}

// SecretIdentifiersRequest lists the secret identifiers of an organization.
type SecretIdentifiersRequest struct {
	OrganizationID string `json:"organizationId" validate:"required,uuid"`
}

// SecretPutRequest replaces the content of an existing secret.
type SecretPutRequest struct {
	ID             string   `json:"id" validate:"required,uuid"`
	OrganizationID string   `json:"organizationId" validate:"required,uuid"`
	Key            string   `json:"key" validate:"required"`
	Value          string   `json:"value"`
	Note           string   `json:"note"`
	ProjectIDs     []string `json:"projectIds,omitempty" validate:"omitempty,dive,uuid"`
}

// SecretsDeleteRequest deletes every secret whose ID is listed.
type SecretsDeleteRequest struct {
	IDs []string `json:"ids" validate:"required,min=1,dive,uuid"`
}

// SecretsSyncRequest asks for the secrets changed since LastSyncedDate. A nil
// date returns every secret.
type SecretsSyncRequest struct {
	LastSyncedDate *time.Time `json:"lastSyncedDate,omitempty"`
	OrganizationID string     `json:"organizationId" validate:"required,uuid"`
}

// SecretResponse describes a single decrypted secret.
type SecretResponse struct {
	CreationDate   time.Time `json:"creationDate"`
	RevisionDate   time.Time `json:"revisionDate"`
	ProjectID      *string   `json:"projectId,omitempty"`
	ID             string    `json:"id"`
	OrganizationID string    `json:"organizationId"`
	Key            string    `json:"key"`
	Value          string    `json:"value"`
	Note           string    `json:"note"`
}

// SecretsResponse is the payload of secrets.getByIds.
type SecretsResponse struct {
	Data []SecretResponse `json:"data"`
}

// SecretIdentifierResponse is the listing form of a secret, without its value.
type SecretIdentifierResponse struct {
	ID             string `json:"id"`
	OrganizationID string `json:"organizationId"`
	Key            string `json:"key"`
}

// SecretIdentifiersResponse is the payload of secrets.list.
type SecretIdentifiersResponse struct {
	Data []SecretIdentifierResponse `json:"data"`
}

// SecretsDeleteResponse reports the per-ID outcome of secrets.delete.
type SecretsDeleteResponse struct {
	Data []DeleteItemResponse `json:"data"`
}

// SecretsSyncResponse is the payload of secrets.sync. Secrets is nil when
// HasChanges is false.
type SecretsSyncResponse struct {
	Secrets    []SecretResponse `json:"secrets,omitempty"`
	HasChanges bool             `json:"hasChanges"`
}
