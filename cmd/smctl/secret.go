package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	sdk "github.com/reglet-dev/secrets-sdk/go"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
)

func newSecretCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "secret",
		Aliases: []string{"secrets"},
		Short:   "Manage secrets",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the organization's secret identifiers",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				orgID, err := a.organizationID()
				if err != nil {
					return err
				}
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Secrets().List(ctx, orgID)
					if err != nil {
						return err
					}
					return printJSON(cmd, res.Data)
				})
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a secret with its value",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Secrets().Get(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, res)
				})
			},
		},
		&cobra.Command{
			Use:   "get-many <id>...",
			Short: "Show several secrets with their values",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Secrets().GetByIDs(ctx, args)
					if err != nil {
						return err
					}
					return printJSON(cmd, res.Data)
				})
			},
		},
		newSecretCreateCmd(a),
		newSecretUpdateCmd(a),
		&cobra.Command{
			Use:   "delete <id>...",
			Short: "Delete secrets",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Secrets().Delete(ctx, args)
					if err != nil {
						return err
					}
					return printJSON(cmd, res.Data)
				})
			},
		},
		newSecretSyncCmd(a),
	)
	return cmd
}

func newSecretCreateCmd(a *app) *cobra.Command {
	var note string
	var projectIDs []string

	cmd := &cobra.Command{
		Use:   "create <key> <value>",
		Short: "Create a secret",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			orgID, err := a.organizationID()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
				res, err := c.Secrets().Create(ctx, args[0], args[1], note, orgID, projectIDs)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().StringVar(&note, "note", "", "secret note")
	cmd.Flags().StringSliceVar(&projectIDs, "project-id", nil, "project to attach the secret to (repeatable)")
	return cmd
}

func newSecretUpdateCmd(a *app) *cobra.Command {
	var key, value, note string
	var projectIDs []string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a secret; unset flags keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
				cur, err := c.Secrets().Get(ctx, args[0])
				if err != nil {
					return err
				}

				flags := cmd.Flags()
				if !flags.Changed("key") {
					key = cur.Key
				}
				if !flags.Changed("value") {
					value = cur.Value
				}
				if !flags.Changed("note") {
					note = cur.Note
				}
				if !flags.Changed("project-id") && cur.ProjectID != nil {
					projectIDs = []string{*cur.ProjectID}
				}

				res, err := c.Secrets().Update(ctx, cur.ID, key, value, note, cur.OrganizationID, projectIDs)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "new key")
	cmd.Flags().StringVar(&value, "value", "", "new value")
	cmd.Flags().StringVar(&note, "note", "", "new note")
	cmd.Flags().StringSliceVar(&projectIDs, "project-id", nil, "projects to attach the secret to (repeatable)")
	return cmd
}

func newSecretSyncCmd(a *app) *cobra.Command {
	var lastSynced string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Fetch secrets changed since a point in time",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orgID, err := a.organizationID()
			if err != nil {
				return err
			}

			var since *time.Time
			if lastSynced != "" {
				t, err := time.Parse(time.RFC3339, lastSynced)
				if err != nil {
					return &sdkerrors.ConfigError{Field: "last-synced", Err: fmt.Errorf("want RFC 3339 time: %w", err)}
				}
				since = &t
			}

			return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
				res, err := c.Secrets().Sync(ctx, orgID, since)
				if err != nil {
					return err
				}
				return printJSON(cmd, res)
			})
		},
	}
	cmd.Flags().StringVar(&lastSynced, "last-synced", "", "RFC 3339 time of the previous sync")
	return cmd
}
