package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	sdk "github.com/reglet-dev/secrets-sdk/go"
	"github.com/reglet-dev/secrets-sdk/go/application/config"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	"github.com/reglet-dev/secrets-sdk/go/domain/ports"
	"github.com/reglet-dev/secrets-sdk/go/infrastructure/native"
	wasmlib "github.com/reglet-dev/secrets-sdk/go/infrastructure/wazero"
	sdklog "github.com/reglet-dev/secrets-sdk/go/log"
	"github.com/reglet-dev/secrets-sdk/go/wireformat"
)

// libraryFactory opens the library selected by the configuration.
type libraryFactory func(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Library, error)

// app carries state shared by the commands of one invocation.
type app struct {
	newLibrary libraryFactory
	logger     *slog.Logger
	cfgFile    string
	cfg        config.Config
}

func newApp() *app {
	return &app{newLibrary: openLibrary}
}

// openLibrary returns the native library or, with runtime=wasm, the WASM
// build at wasm_path.
func openLibrary(ctx context.Context, cfg config.Config, logger *slog.Logger) (ports.Library, error) {
	if cfg.Runtime != config.RuntimeWASM {
		return native.NewLibrary()
	}
	wasmBytes, err := os.ReadFile(cfg.WasmPath)
	if err != nil {
		return nil, &sdkerrors.ConfigError{Field: "wasm_path", Err: err}
	}
	return wasmlib.NewLibrary(ctx, wasmBytes, wasmlib.WithLogger(logger))
}

// newRootCmd builds a fresh command tree; tests create one per case.
func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "smctl",
		Short:         "Manage Secrets Manager projects and secrets.",
		Version:       fmt.Sprintf("%s (commit %s, built %s)", sdk.Version, sdk.Commit, sdk.BuildDate),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.configure(cmd)
		},
	}

	f := cmd.PersistentFlags()
	f.StringVar(&a.cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/secrets-sdk/secrets-sdk.yaml or ./secrets-sdk.yaml)")
	f.String("api-url", "", "API server URL")
	f.String("identity-url", "", "identity server URL")
	f.String("access-token", "", "machine account access token")
	f.String("organization-id", "", "organization id")
	f.String("state-file", "", "file to cache the authenticated session in")
	f.String("runtime", "", `library runtime ("native", "wasm")`)
	f.String("wasm-path", "", "path to the WASM build of the library")
	f.String("log-level", "", `log level ("debug", "info", "warn", "error")`)
	f.String("log-format", "", `log format ("text", "json")`)

	cmd.AddCommand(
		newProjectCmd(a),
		newSecretCmd(a),
		newSchemaCmd(),
		newConfigCmd(a),
		newE2ECmd(a),
	)
	return cmd
}

func (a *app) configure(cmd *cobra.Command) error {
	cfg, err := config.LoadConfig(cmd, a.cfgFile)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	a.cfg = cfg

	level, _ := sdklog.ParseLevel(cfg.Log.Level)
	format, _ := sdklog.ParseFormat(cfg.Log.Format)
	a.logger = sdklog.New(
		sdklog.WithLevel(level),
		sdklog.WithFormat(format),
		sdklog.WithWriter(cmd.ErrOrStderr()),
	)
	return nil
}

// client opens the library, creates a client and logs in with the configured
// access token. The caller closes the client.
func (a *app) client(ctx context.Context) (*sdk.Client, error) {
	if a.cfg.AccessToken == "" {
		return nil, &sdkerrors.ConfigError{Field: "access_token", Err: fmt.Errorf("set --access-token or %s_ACCESS_TOKEN", config.EnvPrefix)}
	}

	lib, err := a.newLibrary(ctx, a.cfg, a.logger)
	if err != nil {
		return nil, err
	}

	settings := a.cfg.ClientSettings()
	c, err := sdk.NewClient(ctx, &settings, sdk.WithLibrary(lib), sdk.WithLogger(a.logger))
	if err != nil {
		_ = lib.Close(ctx)
		return nil, err
	}

	if err := c.AccessTokenLogin(ctx, a.cfg.AccessToken, a.cfg.StateFilePtr()); err != nil {
		_ = c.Close(ctx)
		return nil, err
	}
	return c, nil
}

// withClient runs fn with a logged-in client and closes it afterwards.
func (a *app) withClient(cmd *cobra.Command, fn func(ctx context.Context, c *sdk.Client) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	c, err := a.client(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := c.Close(ctx); cerr != nil {
			a.logger.WarnContext(ctx, "closing client", "error", cerr)
		}
	}()
	return fn(ctx, c)
}

func (a *app) organizationID() (string, error) {
	if a.cfg.OrganizationID == "" {
		return "", &sdkerrors.ConfigError{Field: "organization_id", Err: fmt.Errorf("set --organization-id or %s_ORGANIZATION_ID", config.EnvPrefix)}
	}
	return a.cfg.OrganizationID, nil
}

// printJSON writes v to the command's stdout.
func printJSON(cmd *cobra.Command, v any) error {
	b, err := wireformat.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
	return err
}
