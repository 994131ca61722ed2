package main

import (
	"context"

	"github.com/spf13/cobra"

	sdk "github.com/reglet-dev/secrets-sdk/go"
)

func newProjectCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List the organization's projects",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				orgID, err := a.organizationID()
				if err != nil {
					return err
				}
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Projects().List(ctx, orgID)
					if err != nil {
						return err
					}
					return printJSON(cmd, res.Data)
				})
			},
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Projects().Get(ctx, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, res)
				})
			},
		},
		&cobra.Command{
			Use:   "create <name>",
			Short: "Create a project",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				orgID, err := a.organizationID()
				if err != nil {
					return err
				}
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Projects().Create(ctx, orgID, args[0])
					if err != nil {
						return err
					}
					return printJSON(cmd, res)
				})
			},
		},
		&cobra.Command{
			Use:   "update <id> <name>",
			Short: "Rename a project",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				orgID, err := a.organizationID()
				if err != nil {
					return err
				}
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Projects().Update(ctx, args[0], orgID, args[1])
					if err != nil {
						return err
					}
					return printJSON(cmd, res)
				})
			},
		},
		&cobra.Command{
			Use:   "delete <id>...",
			Short: "Delete projects",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
					res, err := c.Projects().Delete(ctx, args)
					if err != nil {
						return err
					}
					return printJSON(cmd, res.Data)
				})
			},
		},
	)
	return cmd
}
