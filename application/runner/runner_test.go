package runner

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/reglet-dev/secrets-sdk/go/application/validation"
	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
	"github.com/reglet-dev/secrets-sdk/go/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRunner(t *testing.T, lib *testutil.FakeLibrary, opts ...Option) *Runner {
	t.Helper()
	h, err := lib.Init(context.Background(), "{}")
	require.NoError(t, err)
	return New(lib, h, opts...)
}

func projectGet(id string) entities.Command {
	return entities.Command{Projects: &entities.ProjectsCommand{Get: &entities.ProjectGetRequest{ID: id}}}
}

func TestRunner_PassesSerializedCommandAndHandle(t *testing.T) {
	lib := testutil.NewFakeLibrary()
	r := newRunner(t, lib)
	id := uuid.NewString()

	_, err := r.RunCommand(context.Background(), projectGet(id))
	require.NoError(t, err)

	call := lib.LastCall()
	assert.Equal(t, "projects.get", call.Name)
	assert.Equal(t, r.Handle(), call.Handle)
	testutil.AssertJSONEqual(t, `{"projects":{"get":{"id":"`+id+`"}}}`, call.Raw)
}

func TestRunner_RejectsMalformedCommand(t *testing.T) {
	lib := testutil.NewFakeLibrary()
	r := newRunner(t, lib)

	_, err := r.RunCommand(context.Background(), entities.Command{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid command")
	assert.Empty(t, lib.Calls())
}

func TestRunner_ValidatorStopsBadRequests(t *testing.T) {
	lib := testutil.NewFakeLibrary()
	r := newRunner(t, lib, WithValidator(validation.NewValidator()))

	_, err := r.RunCommand(context.Background(), projectGet("not-a-uuid"))

	var verrs sdkerrors.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, err.Error(), "projects.get")
	assert.Empty(t, lib.Calls())
}

func TestRunner_CanceledContext(t *testing.T) {
	lib := testutil.NewFakeLibrary()
	r := newRunner(t, lib)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.RunCommand(ctx, projectGet(uuid.NewString()))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, lib.Calls())
}

func TestRunner_LibraryErrorIsWrapped(t *testing.T) {
	boom := errors.New("null response")
	lib := testutil.NewFakeLibrary().On("projects.get", func(entities.Command) (string, error) {
		return "", boom
	})
	r := newRunner(t, lib)

	_, err := r.RunCommand(context.Background(), projectGet(uuid.NewString()))

	var le *sdkerrors.LibraryError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, "run_command", le.Operation)
	assert.ErrorIs(t, err, boom)
}

func TestRunner_LibraryErrorNotWrappedTwice(t *testing.T) {
	libErr := &sdkerrors.LibraryError{Operation: "run_command", Err: sdkerrors.ErrNotBuilt}
	lib := testutil.NewFakeLibrary().On("projects.get", func(entities.Command) (string, error) {
		return "", libErr
	})
	r := newRunner(t, lib)

	_, err := r.RunCommand(context.Background(), projectGet(uuid.NewString()))

	assert.Same(t, libErr, err)
	assert.Equal(t, 1, strings.Count(err.Error(), "run_command"))
	assert.ErrorIs(t, err, sdkerrors.ErrNotBuilt)
}

func TestRunner_ContextErrorFromLibraryPassesThrough(t *testing.T) {
	lib := testutil.NewFakeLibrary().On("projects.get", func(entities.Command) (string, error) {
		return "", context.DeadlineExceeded
	})
	r := newRunner(t, lib)

	_, err := r.RunCommand(context.Background(), projectGet(uuid.NewString()))

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	var le *sdkerrors.LibraryError
	assert.False(t, errors.As(err, &le))
}

func TestRunner_LogsNameNotPayload(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	lib := testutil.NewFakeLibrary()
	r := newRunner(t, lib, WithLogger(logger))

	cmd := entities.Command{AccessTokenLogin: &entities.AccessTokenLoginRequest{AccessToken: "0.super-secret"}}
	_, err := r.RunCommand(context.Background(), cmd)
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "command=accessTokenLogin")
	assert.NotContains(t, buf.String(), "super-secret")
}

func TestRun_DecodesPayload(t *testing.T) {
	id := uuid.NewString()
	lib := testutil.NewFakeLibrary().OnData("projects.get", map[string]any{
		"id":             id,
		"organizationId": uuid.NewString(),
		"name":           "ProjectName",
		"creationDate":   "2024-01-01T00:00:00Z",
		"revisionDate":   "2024-01-01T00:00:00Z",
	})
	r := newRunner(t, lib)

	p, err := Run[entities.ProjectResponse](context.Background(), r, projectGet(id))
	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "ProjectName", p.Name)
}

func TestRun_FailureBecomesCommandError(t *testing.T) {
	lib := testutil.NewFakeLibrary().OnFailure("projects.get", "Resource not found.")
	r := newRunner(t, lib)

	_, err := Run[entities.ProjectResponse](context.Background(), r, projectGet(uuid.NewString()))

	var ce *sdkerrors.CommandError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "projects.get", ce.Command)
	assert.Equal(t, "Resource not found.", ce.Message)
}

func TestRun_NullDataYieldsZeroValue(t *testing.T) {
	lib := testutil.NewFakeLibrary()
	r := newRunner(t, lib)

	p, err := Run[entities.ProjectsResponse](context.Background(), r,
		entities.Command{Projects: &entities.ProjectsCommand{List: &entities.ProjectsListRequest{OrganizationID: uuid.NewString()}}})
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Empty(t, p.Data)
}

func TestRun_BadEnvelope(t *testing.T) {
	cr := &stubRunner{raw: []byte("not json")}

	_, err := Run[entities.ProjectResponse](context.Background(), cr, projectGet(uuid.NewString()))

	var wfe *sdkerrors.WireFormatError
	require.ErrorAs(t, err, &wfe)
}

type stubRunner struct {
	raw []byte
}

func (s *stubRunner) RunCommand(context.Context, entities.Command) ([]byte, error) {
	return s.raw, nil
}

var _ ports.CommandRunner = (*stubRunner)(nil)
