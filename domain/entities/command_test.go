package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommand_Name(t *testing.T) {
	tests := []struct {
		name string
		cmd  Command
		want string
	}{
		{"login", Command{AccessTokenLogin: &AccessTokenLoginRequest{AccessToken: "t"}}, "accessTokenLogin"},
		{"project get", Command{Projects: &ProjectsCommand{Get: &ProjectGetRequest{}}}, "projects.get"},
		{"project create", Command{Projects: &ProjectsCommand{Create: &ProjectCreateRequest{}}}, "projects.create"},
		{"project list", Command{Projects: &ProjectsCommand{List: &ProjectsListRequest{}}}, "projects.list"},
		{"project update", Command{Projects: &ProjectsCommand{Update: &ProjectPutRequest{}}}, "projects.update"},
		{"project delete", Command{Projects: &ProjectsCommand{Delete: &ProjectsDeleteRequest{}}}, "projects.delete"},
		{"secret get", Command{Secrets: &SecretsCommand{Get: &SecretGetRequest{}}}, "secrets.get"},
		{"secret get by ids", Command{Secrets: &SecretsCommand{GetByIDs: &SecretsGetRequest{}}}, "secrets.getByIds"},
		{"secret create", Command{Secrets: &SecretsCommand{Create: &SecretCreateRequest{}}}, "secrets.create"},
		{"secret list", Command{Secrets: &SecretsCommand{List: &SecretIdentifiersRequest{}}}, "secrets.list"},
		{"secret update", Command{Secrets: &SecretsCommand{Update: &SecretPutRequest{}}}, "secrets.update"},
		{"secret delete", Command{Secrets: &SecretsCommand{Delete: &SecretsDeleteRequest{}}}, "secrets.delete"},
		{"secret sync", Command{Secrets: &SecretsCommand{Sync: &SecretsSyncRequest{}}}, "secrets.sync"},
		{"empty", Command{}, "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.Name())
		})
	}
}

func TestCommand_Check(t *testing.T) {
	t.Run("empty command", func(t *testing.T) {
		err := Command{}.Check()
		require.Error(t, err)
		assert.ErrorIs(t, err, errEmptyCommand)
	})

	t.Run("two variants", func(t *testing.T) {
		cmd := Command{
			Projects: &ProjectsCommand{List: &ProjectsListRequest{}},
			Secrets:  &SecretsCommand{List: &SecretIdentifiersRequest{}},
		}
		assert.ErrorIs(t, cmd.Check(), errAmbiguousCommand)
	})

	t.Run("empty nested group", func(t *testing.T) {
		err := Command{Secrets: &SecretsCommand{}}.Check()
		require.Error(t, err)
		assert.ErrorIs(t, err, errEmptyCommand)
		assert.Contains(t, err.Error(), "secrets")
	})

	t.Run("two nested operations", func(t *testing.T) {
		cmd := Command{Projects: &ProjectsCommand{
			Get:  &ProjectGetRequest{},
			List: &ProjectsListRequest{},
		}}
		err := cmd.Check()
		assert.ErrorIs(t, err, errAmbiguousCommand)
		assert.Contains(t, err.Error(), "projects")
	})

	t.Run("single operation", func(t *testing.T) {
		cmd := Command{Secrets: &SecretsCommand{Sync: &SecretsSyncRequest{}}}
		assert.NoError(t, cmd.Check())
	})
}

func TestResponse_Message(t *testing.T) {
	var nilResp *Response[ProjectResponse]
	assert.Equal(t, "", nilResp.Message())

	assert.Equal(t, "", (&Response[ProjectResponse]{Success: true}).Message())

	msg := "access denied"
	assert.Equal(t, msg, (&Response[ProjectResponse]{ErrorMessage: &msg}).Message())
}

func TestClientSettings_WithDefaults(t *testing.T) {
	s := ClientSettings{}.WithDefaults()
	assert.Equal(t, DefaultAPIURL, s.APIURL)
	assert.Equal(t, DefaultIdentityURL, s.IdentityURL)
	assert.Equal(t, DefaultUserAgent, s.UserAgent)
	assert.Equal(t, DeviceTypeSDK, s.DeviceType)

	custom := ClientSettings{APIURL: "http://localhost:4000", UserAgent: "ci"}.WithDefaults()
	assert.Equal(t, "http://localhost:4000", custom.APIURL)
	assert.Equal(t, "ci", custom.UserAgent)
	assert.Equal(t, DefaultIdentityURL, custom.IdentityURL)
}

func TestErrorDetail_Error(t *testing.T) {
	var nilDetail *ErrorDetail
	assert.Equal(t, "", nilDetail.Error())

	d := NewErrorDetail("command", "project not found").WithCode("projects.get")
	assert.Equal(t, "command: project not found [projects.get]", d.Error())

	internal := NewErrorDetail("internal", "boom")
	internal.Wrapped = NewErrorDetail("library", "nil result")
	assert.Equal(t, "boom: library: nil result", internal.Error())

	withDetails := NewErrorDetail("config", "missing").WithDetails(map[string]any{"field": "RUN_ID"})
	assert.Equal(t, "RUN_ID", withDetails.Details["field"])
}
