package main

import (
	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/reglet-dev/secrets-sdk/go/application/schema"
)

func newSchemaCmd() *cobra.Command {
	var responses bool

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the command wire format",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if responses {
				schemas, err := schema.ResponseSchemas()
				if err != nil {
					return err
				}
				out := make(map[string]json.RawMessage, len(schemas))
				for name, s := range schemas {
					out[name] = s
				}
				return printJSON(cmd, out)
			}

			b, err := schema.CommandSchema()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(b, '\n'))
			return err
		},
	}
	cmd.Flags().BoolVar(&responses, "responses", false, "print the response payload schemas instead, keyed by command")
	return cmd
}
