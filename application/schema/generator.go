// Package schema provides JSON schema generation for the command wire format.
package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, &sdkerrors.SchemaError{Type: schema.Title, Err: err}
	}

	return jsonBytes, nil
}

// CommandSchema returns the schema of the Command union, the document other
// language bindings generate their request types from.
func CommandSchema() ([]byte, error) {
	return GenerateSchema(&entities.Command{})
}

// ResponseSchemas returns the schema of every response payload, keyed by the
// command name that produces it.
func ResponseSchemas() (map[string][]byte, error) {
	payloads := map[string]any{
		"accessTokenLogin": &entities.AccessTokenLoginResponse{},
		"projects.get":     &entities.ProjectResponse{},
		"projects.create":  &entities.ProjectResponse{},
		"projects.update":  &entities.ProjectResponse{},
		"projects.list":    &entities.ProjectsResponse{},
		"projects.delete":  &entities.ProjectsDeleteResponse{},
		"secrets.get":      &entities.SecretResponse{},
		"secrets.create":   &entities.SecretResponse{},
		"secrets.update":   &entities.SecretResponse{},
		"secrets.getByIds": &entities.SecretsResponse{},
		"secrets.list":     &entities.SecretIdentifiersResponse{},
		"secrets.delete":   &entities.SecretsDeleteResponse{},
		"secrets.sync":     &entities.SecretsSyncResponse{},
	}

	out := make(map[string][]byte, len(payloads))
	for name, v := range payloads {
		b, err := GenerateSchema(v)
		if err != nil {
			return nil, err
		}
		out[name] = b
	}
	return out, nil
}
