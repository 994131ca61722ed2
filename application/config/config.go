// Package config loads client and CLI settings from defaults, a YAML file,
// BWS_* environment variables and command line flags, in increasing order of
// precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/reglet-dev/secrets-sdk/go/domain/entities"
	sdkerrors "github.com/reglet-dev/secrets-sdk/go/domain/errors"
	sdklog "github.com/reglet-dev/secrets-sdk/go/log"
)

const (
	// EnvPrefix is prepended to every environment key: BWS_ACCESS_TOKEN.
	EnvPrefix = "BWS"

	fileName = "secrets-sdk"

	RuntimeNative = "native"
	RuntimeWASM   = "wasm"
)

// Config is the resolved configuration.
type Config struct {
	APIURL         string    `mapstructure:"api_url" json:"api_url" yaml:"api_url"`
	IdentityURL    string    `mapstructure:"identity_url" json:"identity_url" yaml:"identity_url"`
	AccessToken    string    `mapstructure:"access_token" json:"access_token,omitempty" yaml:"access_token,omitempty"`
	OrganizationID string    `mapstructure:"organization_id" json:"organization_id,omitempty" yaml:"organization_id,omitempty"`
	StateFile      string    `mapstructure:"state_file" json:"state_file,omitempty" yaml:"state_file,omitempty"`
	Runtime        string    `mapstructure:"runtime" json:"runtime" yaml:"runtime"`
	WasmPath       string    `mapstructure:"wasm_path" json:"wasm_path,omitempty" yaml:"wasm_path,omitempty"`
	Log            LogConfig `mapstructure:"log" json:"log" yaml:"log"`
}

// LogConfig configures the CLI logger.
type LogConfig struct {
	Level  string `mapstructure:"level" json:"level" yaml:"level"`
	Format string `mapstructure:"format" json:"format" yaml:"format"`
}

// Defaults returns the default values keyed the way viper sees them.
func Defaults() map[string]any {
	return map[string]any{
		"api_url":         entities.DefaultAPIURL,
		"identity_url":    entities.DefaultIdentityURL,
		"access_token":    "",
		"organization_id": "",
		"state_file":      "",
		"runtime":         RuntimeNative,
		"wasm_path":       "",
		"log.level":       "info",
		"log.format":      string(sdklog.FormatText),
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("could not get user config directory: %w", err)
	}
	return filepath.Join(dir, fileName, fileName+".yaml"), nil
}

// LoadConfig resolves the configuration for cmd. configFile, when non-empty,
// replaces the search of the default locations and must exist.
func LoadConfig(cmd *cobra.Command, configFile string) (Config, error) {
	var c Config
	v := viper.New()

	for key, value := range Defaults() {
		v.SetDefault(key, value)
	}

	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		if p, err := DefaultPath(); err == nil {
			v.AddConfigPath(filepath.Dir(p))
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing file is fine unless it was asked for explicitly.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" { //nolint:errorlint // viper returns it unwrapped
			return c, &sdkerrors.ConfigError{Field: "config", Err: err}
		}
	}

	v.AutomaticEnv()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if cmd != nil {
		var bindErr error
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if _, known := Defaults()[key]; !known {
				key = strings.ReplaceAll(f.Name, "-", ".")
			}
			if err := v.BindPFlag(key, f); err != nil && bindErr == nil {
				bindErr = err
			}
		})
		if bindErr != nil {
			return c, &sdkerrors.ConfigError{Field: "flags", Err: bindErr}
		}
	}

	if err := v.Unmarshal(&c); err != nil {
		return c, &sdkerrors.ConfigError{Field: "config", Err: err}
	}
	return c, nil
}

// Validate checks the fields the CLI depends on.
func (c Config) Validate() error {
	switch c.Runtime {
	case RuntimeNative:
	case RuntimeWASM:
		if c.WasmPath == "" {
			return &sdkerrors.ConfigError{Field: "wasm_path", Err: fmt.Errorf("required when runtime is %q", RuntimeWASM)}
		}
	default:
		return &sdkerrors.ConfigError{Field: "runtime", Err: fmt.Errorf("must be %q or %q, got %q", RuntimeNative, RuntimeWASM, c.Runtime)}
	}
	if _, err := sdklog.ParseLevel(c.Log.Level); err != nil {
		return &sdkerrors.ConfigError{Field: "log.level", Err: err}
	}
	if _, err := sdklog.ParseFormat(c.Log.Format); err != nil {
		return &sdkerrors.ConfigError{Field: "log.format", Err: err}
	}
	return nil
}

// ClientSettings returns the library settings described by c.
func (c Config) ClientSettings() entities.ClientSettings {
	return entities.ClientSettings{
		APIURL:      c.APIURL,
		IdentityURL: c.IdentityURL,
	}.WithDefaults()
}

// StateFilePtr returns the state file path, or nil when unset.
func (c Config) StateFilePtr() *string {
	if c.StateFile == "" {
		return nil
	}
	s := c.StateFile
	return &s
}

// WriteConfigFile writes c as YAML to path, creating parent directories. The
// file may hold an access token and is written 0600.
func WriteConfigFile(c Config, path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create config directory %s: %w", dir, err)
	}
	return os.WriteFile(path, data, 0o600)
}
