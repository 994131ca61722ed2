// Package e2e holds the fixture helpers used by end-to-end tests against a
// live Secrets Manager organization. Every fixture a run creates carries the
// run identifier from RUN_ID as a name suffix, so concurrent runs against the
// same organization only see and clean up their own data.
//
// Names are assumed unique within a run; nothing checks it.
package e2e

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"

	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
)

// RunIDEnv names the environment variable holding the run identifier.
const RunIDEnv = "RUN_ID"

// Project is a project fixture.
type Project struct {
	ID   string `json:"id,omitempty" yaml:"id,omitempty"`
	Name string `json:"name" yaml:"name"`
}

// Secret is a secret fixture. ProjectName refers to a Project by name;
// ProjectID is filled in by SecretWithProjectID.
type Secret struct {
	ID          string `json:"id,omitempty" yaml:"id,omitempty"`
	Key         string `json:"key" yaml:"key"`
	Value       string `json:"value" yaml:"value"`
	Note        string `json:"note" yaml:"note"`
	ProjectName string `json:"project_name" yaml:"project_name"`
	ProjectID   string `json:"project_id,omitempty" yaml:"project_id,omitempty"`
}

// Env returns the value of the environment variable name, failing when it is
// not set.
func Env(name string) (string, error) {
	v, ok := os.LookupEnv(name)
	if !ok {
		return "", &sdkerrors.ConfigError{Field: name, Err: sdkerrors.ErrMissingEnv}
	}
	return v, nil
}

// NewRunID returns a fresh run identifier suitable for RUN_ID.
func NewRunID() string {
	return uuid.NewString()
}

// WithRunID appends "-" and the run identifier to s.
func WithRunID(s string) (string, error) {
	runID, err := Env(RunIDEnv)
	if err != nil {
		return "", err
	}
	return s + "-" + runID, nil
}

// FilterProjectsToRun keeps the projects whose name ends with the run
// identifier.
func FilterProjectsToRun(projects []Project) ([]Project, error) {
	return filterToRun(projects, func(p Project) string { return p.Name })
}

// FilterSecretsToRun keeps the secrets whose key ends with the run identifier.
func FilterSecretsToRun(secrets []Secret) ([]Secret, error) {
	return filterToRun(secrets, func(s Secret) string { return s.Key })
}

func filterToRun[T any](items []T, name func(T) string) ([]T, error) {
	runID, err := Env(RunIDEnv)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if strings.HasSuffix(name(it), runID) {
			out = append(out, it)
		}
	}
	return out, nil
}

// ProjectWithRunID tags the project name with the run identifier.
func ProjectWithRunID(p Project) (Project, error) {
	name, err := WithRunID(p.Name)
	if err != nil {
		return p, err
	}
	p.Name = name
	return p, nil
}

// SecretWithRunID tags both the secret key and the project name it refers to.
func SecretWithRunID(s Secret) (Secret, error) {
	key, err := WithRunID(s.Key)
	if err != nil {
		return s, err
	}
	projectName, err := WithRunID(s.ProjectName)
	if err != nil {
		return s, err
	}
	s.Key = key
	s.ProjectName = projectName
	return s, nil
}

// SecretWithProjectID copies the id of the project named s.ProjectName into
// s.ProjectID. The first match wins.
func SecretWithProjectID(s Secret, projects []Project) (Secret, error) {
	for _, p := range projects {
		if p.Name == s.ProjectName {
			s.ProjectID = p.ID
			return s, nil
		}
	}
	return s, fmt.Errorf("secret %q: %w: %q", s.Key, sdkerrors.ErrProjectNotFound, s.ProjectName)
}
