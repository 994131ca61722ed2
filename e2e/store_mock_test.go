package e2e

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
)

type mockProjects struct {
	mock.Mock
}

func (m *mockProjects) Create(ctx context.Context, organizationID, name string) (*entities.ProjectResponse, error) {
	args := m.Called(ctx, organizationID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectResponse), args.Error(1)
}

func (m *mockProjects) List(ctx context.Context, organizationID string) (*entities.ProjectsResponse, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectsResponse), args.Error(1)
}

func (m *mockProjects) Delete(ctx context.Context, ids []string) (*entities.ProjectsDeleteResponse, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.ProjectsDeleteResponse), args.Error(1)
}

type mockSecrets struct {
	mock.Mock
}

func (m *mockSecrets) Create(ctx context.Context, key, value, note, organizationID string, projectIDs []string) (*entities.SecretResponse, error) {
	args := m.Called(ctx, key, value, note, organizationID, projectIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SecretResponse), args.Error(1)
}

func (m *mockSecrets) List(ctx context.Context, organizationID string) (*entities.SecretIdentifiersResponse, error) {
	args := m.Called(ctx, organizationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SecretIdentifiersResponse), args.Error(1)
}

func (m *mockSecrets) Delete(ctx context.Context, ids []string) (*entities.SecretsDeleteResponse, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.SecretsDeleteResponse), args.Error(1)
}

func TestSeed_ProjectCreateFails(t *testing.T) {
	t.Setenv(RunIDEnv, runID)

	projects := new(mockProjects)
	secrets := new(mockSecrets)
	projects.On("Create", mock.Anything, "org", "Alpha-run42").Return(nil, errors.New("quota exceeded"))

	_, err := Seed(context.Background(), projects, secrets, "org", Data{Projects: []Project{{Name: "Alpha"}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `seed project "Alpha-run42"`)
	assert.Contains(t, err.Error(), "quota exceeded")

	projects.AssertExpectations(t)
	secrets.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSeed_SecretCreateFails(t *testing.T) {
	t.Setenv(RunIDEnv, runID)

	projects := new(mockProjects)
	secrets := new(mockSecrets)
	projects.On("Create", mock.Anything, "org", "Alpha-run42").Return(&entities.ProjectResponse{ID: "p1", Name: "Alpha-run42"}, nil)
	secrets.On("Create", mock.Anything, "K-run42", "v", "", "org", []string{"p1"}).Return(nil, errors.New("denied"))

	d := Data{
		Projects: []Project{{Name: "Alpha"}},
		Secrets:  []Secret{{Key: "K", Value: "v", ProjectName: "Alpha"}},
	}
	_, err := Seed(context.Background(), projects, secrets, "org", d)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `seed secret "K-run42"`)

	projects.AssertExpectations(t)
	secrets.AssertExpectations(t)
}

func TestCleanup_ListFails(t *testing.T) {
	t.Setenv(RunIDEnv, runID)

	projects := new(mockProjects)
	secrets := new(mockSecrets)
	secrets.On("List", mock.Anything, "org").Return(nil, errors.New("offline"))

	err := Cleanup(context.Background(), projects, secrets, "org")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list secrets")
	projects.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestCleanup_DeletesOnlyThisRun(t *testing.T) {
	t.Setenv(RunIDEnv, runID)

	projects := new(mockProjects)
	secrets := new(mockSecrets)
	secrets.On("List", mock.Anything, "org").Return(&entities.SecretIdentifiersResponse{Data: []entities.SecretIdentifierResponse{
		{ID: "s1", Key: "A-run42"},
		{ID: "s2", Key: "A-run7"},
	}}, nil)
	secrets.On("Delete", mock.Anything, []string{"s1"}).Return(&entities.SecretsDeleteResponse{}, nil)
	projects.On("List", mock.Anything, "org").Return(&entities.ProjectsResponse{Data: []entities.ProjectResponse{
		{ID: "p1", Name: "P-run7"},
		{ID: "p2", Name: "P-run42"},
	}}, nil)
	projects.On("Delete", mock.Anything, []string{"p2"}).Return(&entities.ProjectsDeleteResponse{}, nil)

	require.NoError(t, Cleanup(context.Background(), projects, secrets, "org"))

	projects.AssertExpectations(t)
	secrets.AssertExpectations(t)
}

var (
	_ ProjectStore = (*mockProjects)(nil)
	_ SecretStore  = (*mockSecrets)(nil)
)
