package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/fivetwenty-io/partnercenter-client/internal/constants"
	"github.com/fivetwenty-io/partnercenter-client/internal/persist"
	"github.com/fivetwenty-io/partnercenter-client/pkg/msapi"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const configDirName = ".mspc"

// Config represents the CLI configuration.
type Config struct {
	Tenant       string `json:"tenant,omitempty"        yaml:"tenant,omitempty"`
	ClientID     string `json:"client_id,omitempty"     yaml:"client_id,omitempty"`
	ClientSecret string `json:"client_secret,omitempty" yaml:"client_secret,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	OAuthVersion string `json:"oauth_version,omitempty" yaml:"oauth_version,omitempty"`
	Resource     string `json:"resource,omitempty"      yaml:"resource,omitempty"`
	Timeout      string `json:"timeout,omitempty"       yaml:"timeout,omitempty"`

	Conflict ConflictConfig `json:"conflict" yaml:"conflict"`

	TokenStore string `json:"token_store,omitempty" yaml:"token_store,omitempty"`
	NATSURL    string `json:"nats_url,omitempty"    yaml:"nats_url,omitempty"`
	NATSBucket string `json:"nats_bucket,omitempty" yaml:"nats_bucket,omitempty"`

	Output string `json:"output,omitempty" yaml:"output,omitempty"`
}

// ConflictConfig configures 409 retries.
type ConflictConfig struct {
	Enabled    bool   `json:"enabled"               yaml:"enabled"`
	Delay      string `json:"delay,omitempty"       yaml:"delay,omitempty"`
	MaxRetries int    `json:"max_retries,omitempty" yaml:"max_retries,omitempty"`
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the mspc configuration stored in ~/.mspc/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	var showSecrets bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the current CLI configuration. Secrets are masked unless --show-secrets is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			display := *config
			if !showSecrets {
				display.ClientSecret = maskSecret(config.ClientSecret)
				display.RefreshToken = maskSecret(config.RefreshToken)
			}

			return renderOutput(display, func() error {
				return renderProperties(configRows(&display))
			})
		},
	}

	cmd.Flags().BoolVar(&showSecrets, "show-secrets", false, "print the client secret and refresh token")

	return cmd
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value, e.g. 'mspc config set conflict.enabled true'",
		Args:  cobra.ExactArgs(2), //nolint:mnd // key and value
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := setConfigValue(config, args[0], args[1])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			printMessage("Set %s", args[0])

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value, restoring its default",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			err := unsetConfigValue(config, args[0])
			if err != nil {
				return err
			}

			err = saveConfigStruct(config)
			if err != nil {
				return fmt.Errorf("failed to save config: %w", err)
			}

			printMessage("Unset %s", args[0])

			return nil
		},
	}
}

// loadConfig reads the configuration from viper, which merges the config
// file, MSPC_* environment variables and bound flags.
func loadConfig() *Config {
	return &Config{
		Tenant:       viper.GetString("tenant"),
		ClientID:     viper.GetString("client_id"),
		ClientSecret: viper.GetString("client_secret"),
		RefreshToken: viper.GetString("refresh_token"),
		OAuthVersion: viper.GetString("oauth_version"),
		Resource:     viper.GetString("resource"),
		Timeout:      viper.GetString("timeout"),
		Conflict: ConflictConfig{
			Enabled:    viper.GetBool("conflict.enabled"),
			Delay:      viper.GetString("conflict.delay"),
			MaxRetries: viper.GetInt("conflict.max_retries"),
		},
		TokenStore: viper.GetString("token_store"),
		NATSURL:    viper.GetString("nats_url"),
		NATSBucket: viper.GetString("nats_bucket"),
		Output:     viper.GetString("output"),
	}
}

// configDir returns the directory holding config.yml and tokens.yml.
func configDir() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return filepath.Dir(configFile), nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, configDirName), nil
}

func configFilePath() (string, error) {
	configFile := viper.ConfigFileUsed()
	if configFile != "" {
		return configFile, nil
	}

	dir, err := configDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.yml"), nil
}

func saveConfigStruct(config *Config) error {
	configFile, err := configFilePath()
	if err != nil {
		return err
	}

	err = os.MkdirAll(filepath.Dir(configFile), constants.ConfigDirPerm)
	if err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	err = os.WriteFile(configFile, data, constants.ConfigFilePerm)
	if err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	syncViper(config)

	return nil
}

// syncViper keeps the in-process view in step with what was just saved.
func syncViper(config *Config) {
	viper.Set("tenant", config.Tenant)
	viper.Set("client_id", config.ClientID)
	viper.Set("client_secret", config.ClientSecret)
	viper.Set("refresh_token", config.RefreshToken)
	viper.Set("oauth_version", config.OAuthVersion)
	viper.Set("resource", config.Resource)
	viper.Set("timeout", config.Timeout)
	viper.Set("conflict.enabled", config.Conflict.Enabled)
	viper.Set("conflict.delay", config.Conflict.Delay)
	viper.Set("conflict.max_retries", config.Conflict.MaxRetries)
	viper.Set("token_store", config.TokenStore)
	viper.Set("nats_url", config.NATSURL)
	viper.Set("nats_bucket", config.NATSBucket)

	if config.Output != "" {
		viper.Set("output", config.Output)
	}
}

// setConfigValue validates and applies one key.
//
//nolint:cyclop // one case per key
func setConfigValue(config *Config, key, value string) error {
	switch key {
	case "tenant":
		config.Tenant = value
	case "client_id":
		config.ClientID = value
	case "client_secret":
		config.ClientSecret = value
	case "refresh_token":
		config.RefreshToken = value
	case "oauth_version":
		switch msapi.OAuthVersion(value) {
		case msapi.OAuthV1, msapi.OAuthV2:
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedOAuth, value)
		}

		config.OAuthVersion = value
	case "resource":
		config.Resource = value
	case "timeout":
		err := validateDuration(key, value)
		if err != nil {
			return err
		}

		config.Timeout = value
	case "conflict.enabled":
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid value for %s: %w", key, err)
		}

		config.Conflict.Enabled = enabled
	case "conflict.delay":
		err := validateDuration(key, value)
		if err != nil {
			return err
		}

		config.Conflict.Delay = value
	case "conflict.max_retries":
		retries, err := strconv.Atoi(value)
		if err != nil || retries < 0 {
			return fmt.Errorf("%w: %s must be a non-negative integer", ErrInvalidQuantity, key)
		}

		config.Conflict.MaxRetries = retries
	case "token_store":
		switch persist.StoreType(value) {
		case persist.StoreTypeFile, persist.StoreTypeNATS, persist.StoreTypeNone:
		default:
			return fmt.Errorf("%w: %s", ErrInvalidTokenStore, value)
		}

		config.TokenStore = value
	case "nats_url":
		config.NATSURL = value
	case "nats_bucket":
		config.NATSBucket = value
	case "output":
		switch value {
		case OutputFormatTable, OutputFormatJSON, OutputFormatYAML:
		default:
			return fmt.Errorf("%w: %s", ErrInvalidOutputFormat, value)
		}

		config.Output = value
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

//nolint:cyclop // one case per key
func unsetConfigValue(config *Config, key string) error {
	switch key {
	case "tenant":
		config.Tenant = ""
	case "client_id":
		config.ClientID = ""
	case "client_secret":
		config.ClientSecret = ""
	case "refresh_token":
		config.RefreshToken = ""
	case "oauth_version":
		config.OAuthVersion = ""
	case "resource":
		config.Resource = ""
	case "timeout":
		config.Timeout = ""
	case "conflict.enabled":
		config.Conflict.Enabled = false
	case "conflict.delay":
		config.Conflict.Delay = ""
	case "conflict.max_retries":
		config.Conflict.MaxRetries = 0
	case "token_store":
		config.TokenStore = ""
	case "nats_url":
		config.NATSURL = ""
	case "nats_bucket":
		config.NATSBucket = ""
	case "output":
		config.Output = ""
	default:
		return fmt.Errorf("%w: %s", ErrUnknownConfigKey, key)
	}

	return nil
}

func validateDuration(key, value string) error {
	_, err := time.ParseDuration(value)
	if err != nil {
		return fmt.Errorf("invalid duration for %s: %w", key, err)
	}

	return nil
}

func configRows(config *Config) [][]string {
	return [][]string{
		{"Tenant", formatValue(config.Tenant)},
		{"Client ID", formatValue(config.ClientID)},
		{"Client Secret", formatValue(config.ClientSecret)},
		{"Refresh Token", formatValue(config.RefreshToken)},
		{"OAuth Version", formatValue(config.OAuthVersion)},
		{"Resource", formatValue(config.Resource)},
		{"Timeout", formatValue(config.Timeout)},
		{"Conflict Retries", strconv.FormatBool(config.Conflict.Enabled)},
		{"Conflict Delay", formatValue(config.Conflict.Delay)},
		{"Conflict Max Retries", strconv.Itoa(config.Conflict.MaxRetries)},
		{"Token Store", formatValue(config.TokenStore)},
		{"NATS URL", formatValue(config.NATSURL)},
		{"NATS Bucket", formatValue(config.NATSBucket)},
		{"Output", formatValue(config.Output)},
	}
}
