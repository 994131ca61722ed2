package entities

import (
	"errors"
	"fmt"
)

// Command is a single request for the native library. Exactly one top-level
// field is set, and within ProjectsCommand/SecretsCommand exactly one operation.
type Command struct {
	AccessTokenLogin *AccessTokenLoginRequest `json:"accessTokenLogin,omitempty"`
	Projects         *ProjectsCommand         `json:"projects,omitempty"`
	Secrets          *SecretsCommand          `json:"secrets,omitempty"`
}

// ProjectsCommand groups the project operations.
type ProjectsCommand struct {
	Get    *ProjectGetRequest     `json:"get,omitempty"`
	Create *ProjectCreateRequest  `json:"create,omitempty"`
	List   *ProjectsListRequest   `json:"list,omitempty"`
	Update *ProjectPutRequest     `json:"update,omitempty"`
	Delete *ProjectsDeleteRequest `json:"delete,omitempty"`
}

// SecretsCommand groups the secret operations.
type SecretsCommand struct {
	Get      *SecretGetRequest         `json:"get,omitempty"`
	GetByIDs *SecretsGetRequest        `json:"getByIds,omitempty"`
	Create   *SecretCreateRequest      `json:"create,omitempty"`
	List     *SecretIdentifiersRequest `json:"list,omitempty"`
	Update   *SecretPutRequest         `json:"update,omitempty"`
	Delete   *SecretsDeleteRequest     `json:"delete,omitempty"`
	Sync     *SecretsSyncRequest       `json:"sync,omitempty"`
}

var (
	errEmptyCommand     = errors.New("command has no operation set")
	errAmbiguousCommand = errors.New("command has more than one operation set")
)

// Name returns the dotted operation name of the command, e.g. "projects.create".
// It returns "unknown" for commands that fail Check.
func (c Command) Name() string {
	if c.Check() != nil {
		return "unknown"
	}
	switch {
	case c.AccessTokenLogin != nil:
		return "accessTokenLogin"
	case c.Projects != nil:
		return "projects." + c.Projects.operation()
	default:
		return "secrets." + c.Secrets.operation()
	}
}

// Check reports whether exactly one command variant and exactly one nested
// operation are set.
func (c Command) Check() error {
	n := 0
	if c.AccessTokenLogin != nil {
		n++
	}
	if c.Projects != nil {
		n++
	}
	if c.Secrets != nil {
		n++
	}
	switch {
	case n == 0:
		return errEmptyCommand
	case n > 1:
		return errAmbiguousCommand
	}

	if c.Projects != nil {
		return checkOne("projects", c.Projects.count())
	}
	if c.Secrets != nil {
		return checkOne("secrets", c.Secrets.count())
	}
	return nil
}

func checkOne(group string, n int) error {
	switch {
	case n == 0:
		return fmt.Errorf("%s: %w", group, errEmptyCommand)
	case n > 1:
		return fmt.Errorf("%s: %w", group, errAmbiguousCommand)
	}
	return nil
}

func (p *ProjectsCommand) count() int {
	return countSet(p.Get != nil, p.Create != nil, p.List != nil, p.Update != nil, p.Delete != nil)
}

func (p *ProjectsCommand) operation() string {
	switch {
	case p.Get != nil:
		return "get"
	case p.Create != nil:
		return "create"
	case p.List != nil:
		return "list"
	case p.Update != nil:
		return "update"
	default:
		return "delete"
	}
}

func (s *SecretsCommand) count() int {
	return countSet(s.Get != nil, s.GetByIDs != nil, s.Create != nil, s.List != nil,
		s.Update != nil, s.Delete != nil, s.Sync != nil)
}

func (s *SecretsCommand) operation() string {
	switch {
	case s.Get != nil:
		return "get"
	case s.GetByIDs != nil:
		return "getByIds"
	case s.Create != nil:
		return "create"
	case s.List != nil:
		return "list"
	case s.Update != nil:
		return "update"
	case s.Delete != nil:
		return "delete"
	default:
		return "sync"
	}
}

func countSet(flags ...bool) int {
	n := 0
	for _, f := range flags {
		if f {
			n++
		}
	}
	return n
}
