package e2e

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
)

// ProjectStore is the subset of project operations seeding needs.
type ProjectStore interface {
	Create(ctx context.Context, organizationID, name string) (*entities.ProjectResponse, error)
	List(ctx context.Context, organizationID string) (*entities.ProjectsResponse, error)
	Delete(ctx context.Context, ids []string) (*entities.ProjectsDeleteResponse, error)
}

// SecretStore is the subset of secret operations seeding needs.
type SecretStore interface {
	Create(ctx context.Context, key, value, note, organizationID string, projectIDs []string) (*entities.SecretResponse, error)
	List(ctx context.Context, organizationID string) (*entities.SecretIdentifiersResponse, error)
	Delete(ctx context.Context, ids []string) (*entities.SecretsDeleteResponse, error)
}

// Seeded is what Seed created, with ids filled in.
type Seeded struct {
	Projects []Project `json:"projects"`
	Secrets  []Secret  `json:"secrets"`
}

// Seed tags d with the run identifier and creates its projects, then its
// secrets linked to those projects. Mutable fixtures are left to the tests.
func Seed(ctx context.Context, projects ProjectStore, secrets SecretStore, organizationID string, d Data) (Seeded, error) {
	var out Seeded

	tagged, err := d.Tagged()
	if err != nil {
		return out, err
	}

	for _, p := range tagged.Projects {
		res, err := projects.Create(ctx, organizationID, p.Name)
		if err != nil {
			return out, fmt.Errorf("seed project %q: %w", p.Name, err)
		}
		p.ID = res.ID
		out.Projects = append(out.Projects, p)
	}

	for _, s := range tagged.Secrets {
		s, err := SecretWithProjectID(s, out.Projects)
		if err != nil {
			return out, err
		}
		res, err := secrets.Create(ctx, s.Key, s.Value, s.Note, organizationID, []string{s.ProjectID})
		if err != nil {
			return out, fmt.Errorf("seed secret %q: %w", s.Key, err)
		}
		s.ID = res.ID
		out.Secrets = append(out.Secrets, s)
	}

	slog.DebugContext(ctx, "e2e fixtures seeded", "projects", len(out.Projects), "secrets", len(out.Secrets))
	return out, nil
}

// Cleanup deletes every secret and project of the organization tagged with the
// run identifier. Secrets go first so no project is deleted out from under
// them. A failed secret delete does not stop the project pass; all failures
// are joined into the returned error.
func Cleanup(ctx context.Context, projects ProjectStore, secrets SecretStore, organizationID string) error {
	secretList, err := secrets.List(ctx, organizationID)
	if err != nil {
		return fmt.Errorf("list secrets: %w", err)
	}
	ownSecrets, err := FilterSecretsToRun(secretsFromIdentifiers(secretList.Data))
	if err != nil {
		return err
	}

	var errs []error
	if len(ownSecrets) > 0 {
		res, err := secrets.Delete(ctx, secretIDs(ownSecrets))
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("delete secrets: %w", err))
		default:
			if err := itemErrors(res.Data); err != nil {
				errs = append(errs, fmt.Errorf("delete secrets: %w", err))
			}
		}
	}

	projectList, err := projects.List(ctx, organizationID)
	if err != nil {
		return errors.Join(append(errs, fmt.Errorf("list projects: %w", err))...)
	}
	ownProjects, err := FilterProjectsToRun(projectsFromResponses(projectList.Data))
	if err != nil {
		return errors.Join(append(errs, err)...)
	}
	if len(ownProjects) > 0 {
		res, err := projects.Delete(ctx, projectIDs(ownProjects))
		switch {
		case err != nil:
			errs = append(errs, fmt.Errorf("delete projects: %w", err))
		default:
			if err := itemErrors(res.Data); err != nil {
				errs = append(errs, fmt.Errorf("delete projects: %w", err))
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	slog.DebugContext(ctx, "e2e fixtures removed", "projects", len(ownProjects), "secrets", len(ownSecrets))
	return nil
}

func projectsFromResponses(rs []entities.ProjectResponse) []Project {
	out := make([]Project, len(rs))
	for i, r := range rs {
		out[i] = Project{ID: r.ID, Name: r.Name}
	}
	return out
}

func secretsFromIdentifiers(rs []entities.SecretIdentifierResponse) []Secret {
	out := make([]Secret, len(rs))
	for i, r := range rs {
		out[i] = Secret{ID: r.ID, Key: r.Key}
	}
	return out
}

func projectIDs(ps []Project) []string {
	ids := make([]string, len(ps))
	for i, p := range ps {
		ids[i] = p.ID
	}
	return ids
}

func secretIDs(ss []Secret) []string {
	ids := make([]string, len(ss))
	for i, s := range ss {
		ids[i] = s.ID
	}
	return ids
}

func itemErrors(items []entities.DeleteItemResponse) error {
	var errs []error
	for _, it := range items {
		if it.Error != nil {
			errs = append(errs, fmt.Errorf("%s: %s", it.ID, *it.Error))
		}
	}
	return errors.Join(errs...)
}
