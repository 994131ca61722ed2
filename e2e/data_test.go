package e2e

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturesYAML = `
projects:
  - name: Alpha
  - name: Beta
mutable_projects:
  - name: Mutable
secrets:
  - key: DB_PASSWORD
    value: hunter2
    note: primary
    project_name: Alpha
  - key: API_KEY
    value: abc
    note: ""
    project_name: Beta
mutable_secrets:
  - key: ROTATE_ME
    value: old
    note: ""
    project_name: Mutable
`

func TestLoadData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "e2e_data.yaml")
	require.NoError(t, os.WriteFile(path, []byte(fixturesYAML), 0o600))

	d, err := LoadData(path)
	require.NoError(t, err)

	assert.Len(t, d.Projects, 2)
	assert.Equal(t, []Project{{Name: "Mutable"}}, d.MutableProjects)
	require.Len(t, d.Secrets, 2)
	assert.Equal(t, Secret{Key: "DB_PASSWORD", Value: "hunter2", Note: "primary", ProjectName: "Alpha"}, d.Secrets[0])
	assert.Equal(t, "Mutable", d.MutableSecrets[0].ProjectName)
}

func TestParseData_JSON(t *testing.T) {
	d, err := ParseData([]byte(`{"projects":[{"name":"Alpha"}],"secrets":[{"key":"K","value":"V","note":"N","project_name":"Alpha"}]}`))
	require.NoError(t, err)
	assert.Equal(t, "Alpha", d.Projects[0].Name)
	assert.Equal(t, "Alpha", d.Secrets[0].ProjectName)
}

func TestLoadData_Errors(t *testing.T) {
	_, err := LoadData(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "read fixtures")

	_, err = ParseData([]byte("projects: [unclosed"))
	assert.ErrorContains(t, err, "parse fixtures")
}

func TestData_Tagged(t *testing.T) {
	t.Setenv(RunIDEnv, runID)

	d, err := ParseData([]byte(fixturesYAML))
	require.NoError(t, err)

	tagged, err := d.Tagged()
	require.NoError(t, err)

	assert.Equal(t, "Alpha-run42", tagged.Projects[0].Name)
	assert.Equal(t, "Mutable-run42", tagged.MutableProjects[0].Name)
	assert.Equal(t, "DB_PASSWORD-run42", tagged.Secrets[0].Key)
	assert.Equal(t, "Alpha-run42", tagged.Secrets[0].ProjectName)
	assert.Equal(t, "ROTATE_ME-run42", tagged.MutableSecrets[0].Key)

	// The source is untouched.
	assert.Equal(t, "Alpha", d.Projects[0].Name)
}
