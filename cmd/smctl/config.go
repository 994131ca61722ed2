package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reglet-dev/secrets-sdk/go/application/config"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect and write the configuration file",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the resolved configuration with the access token hidden",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c := a.cfg
			if c.AccessToken != "" {
				c.AccessToken = "[redacted]"
			}
			return printJSON(cmd, c)
		},
	}

	var path string
	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write the resolved configuration to a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if path == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				path = p
			}
			if err := config.WriteConfigFile(a.cfg, path); err != nil {
				return err
			}
			_, err := fmt.Fprintln(cmd.OutOrStdout(), path)
			return err
		},
	}
	initCmd.Flags().StringVar(&path, "path", "", "file to write (default is the per-user config file)")

	cmd.AddCommand(show, initCmd)
	return cmd
}
