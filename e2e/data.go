package e2e

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Data is the fixture file. Projects and Secrets are seeded before the tests
// run; the mutable sets are for tests that create, update or delete.
type Data struct {
	Projects        []Project `yaml:"projects"`
	MutableProjects []Project `yaml:"mutable_projects"`
	Secrets         []Secret  `yaml:"secrets"`
	MutableSecrets  []Secret  `yaml:"mutable_secrets"`
}

// LoadData reads a YAML (or JSON) fixture file.
func LoadData(path string) (Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Data{}, fmt.Errorf("read fixtures: %w", err)
	}
	return ParseData(raw)
}

// ParseData decodes fixture data.
func ParseData(raw []byte) (Data, error) {
	var d Data
	if err := yaml.Unmarshal(raw, &d); err != nil {
		return Data{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return d, nil
}

// Tagged returns a copy of d with every fixture tagged with the run
// identifier.
func (d Data) Tagged() (Data, error) {
	var out Data
	var err error
	if out.Projects, err = tagAll(d.Projects, ProjectWithRunID); err != nil {
		return Data{}, err
	}
	if out.MutableProjects, err = tagAll(d.MutableProjects, ProjectWithRunID); err != nil {
		return Data{}, err
	}
	if out.Secrets, err = tagAll(d.Secrets, SecretWithRunID); err != nil {
		return Data{}, err
	}
	if out.MutableSecrets, err = tagAll(d.MutableSecrets, SecretWithRunID); err != nil {
		return Data{}, err
	}
	return out, nil
}

func tagAll[T any](items []T, tag func(T) (T, error)) ([]T, error) {
	if items == nil {
		return nil, nil
	}
	out := make([]T, len(items))
	for i, it := range items {
		t, err := tag(it)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}
