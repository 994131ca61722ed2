package main

import (
	"context"

	"github.com/spf13/cobra"

	sdk "github.com/reglet-dev/secrets-sdk/go"
	"github.com/reglet-dev/secrets-sdk/go/e2e"
)

func newE2ECmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "e2e",
		Short: "Seed and remove end-to-end test fixtures tagged with RUN_ID",
	}

	var dataPath string
	seed := &cobra.Command{
		Use:   "seed",
		Short: "Create the fixtures from a data file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orgID, err := a.organizationID()
			if err != nil {
				return err
			}
			data, err := e2e.LoadData(dataPath)
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
				seeded, err := e2e.Seed(ctx, c.Projects(), c.Secrets(), orgID, data)
				if err != nil {
					return err
				}
				return printJSON(cmd, seeded)
			})
		},
	}
	seed.Flags().StringVar(&dataPath, "data", "e2e_data.yaml", "fixture file")

	cleanup := &cobra.Command{
		Use:   "cleanup",
		Short: "Delete every fixture of this run",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			orgID, err := a.organizationID()
			if err != nil {
				return err
			}
			return a.withClient(cmd, func(ctx context.Context, c *sdk.Client) error {
				return e2e.Cleanup(ctx, c.Projects(), c.Secrets(), orgID)
			})
		},
	}

	runID := &cobra.Command{
		Use:   "run-id",
		Short: "Print a fresh run identifier for RUN_ID",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := cmd.OutOrStdout().Write([]byte(e2e.NewRunID() + "\n"))
			return err
		},
	}

	cmd.AddCommand(seed, cleanup, runID)
	return cmd
}
