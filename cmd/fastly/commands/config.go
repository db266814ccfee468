package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/fivetwenty-io/fastly/internal/constants"
	"github.com/fivetwenty-io/fastly/pkg/fastly"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Config represents the CLI configuration file. Tokens are never written
// here; they live in the keyring.
type Config struct {
	Output         string `json:"output,omitempty"          yaml:"output,omitempty"`
	Endpoint       string `json:"endpoint,omitempty"        yaml:"endpoint,omitempty"`
	Profile        string `json:"profile,omitempty"         yaml:"profile,omitempty"`
	ServiceID      string `json:"service_id,omitempty"      yaml:"service_id,omitempty"`
	ServiceVersion int    `json:"service_version,omitempty" yaml:"service_version,omitempty"`
	Cache          string `json:"cache,omitempty"           yaml:"cache,omitempty"`
	CacheAddr      string `json:"cache_addr,omitempty"      yaml:"cache_addr,omitempty"`
}

// configKeys maps the names accepted by "config set" to setters.
var configKeys = map[string]func(c *Config, value string) error{
	keyOutput: func(c *Config, value string) error {
		switch value {
		case constants.FormatJSON, constants.FormatYAML, constants.FormatTable:
			c.Output = value

			return nil
		default:
			return fmt.Errorf("%w: %s", constants.ErrUnsupportedOutput, value)
		}
	},
	keyEndpoint: func(c *Config, value string) error { c.Endpoint = value; return nil },
	keyProfile:  func(c *Config, value string) error { c.Profile = value; return nil },
	"service":   func(c *Config, value string) error { c.ServiceID = value; return nil },
	keyServiceVersion: func(c *Config, value string) error {
		number, err := strconv.Atoi(value)
		if err != nil || number < 0 {
			return fmt.Errorf("invalid version %q: %w", value, constants.ErrServiceVersionRequired)
		}

		c.ServiceVersion = number

		return nil
	},
	keyCache:     func(c *Config, value string) error { c.Cache = value; return nil },
	keyCacheAddr: func(c *Config, value string) error { c.CacheAddr = value; return nil },
}

// NewConfigCommand creates the config command group.
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI configuration",
		Long:  "Show and change the defaults stored in ~/.fastly/config.yml",
	}

	cmd.AddCommand(newConfigShowCommand())
	cmd.AddCommand(newConfigSetCommand())
	cmd.AddCommand(newConfigUnsetCommand())

	return cmd
}

func newConfigShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		Long:  "Display the effective CLI configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			config := loadConfig()

			return renderOutput(cmd.OutOrStdout(), config, func(table *tablewriter.Table) {
				table.Header("Setting", "Value")
				_ = table.Append("Output", config.Output)
				_ = table.Append("Endpoint", valueOr(config.Endpoint, constants.DefaultBaseURL))
				_ = table.Append("Profile", valueOr(config.Profile, constants.DefaultProfile))
				_ = table.Append("Service", valueOr(config.ServiceID, constants.NotAvailable))
				_ = table.Append("Version", versionText(config.ServiceVersion))
				_ = table.Append("Cache", valueOr(config.Cache, string(fastly.CacheTypeNone)))
				_ = table.Append("Cache address", valueOr(config.CacheAddr, constants.NotAvailable))
			})
		},
	}
}

func newConfigSetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a configuration value",
		Long:  "Set a configuration value. Keys: output, endpoint, profile, service, service_version, cache, cache_addr",
		Args:  cobra.ExactArgs(constants.MinimumArgumentCount),
		RunE: func(cmd *cobra.Command, args []string) error {
			key, value := args[0], args[1]

			setter, ok := configKeys[key]
			if !ok {
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			config := loadConfig()

			err := setter(config, value)
			if err != nil {
				return err
			}

			err = saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Set %s to %s\n", key, value)

			return nil
		},
	}
}

func newConfigUnsetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "unset KEY",
		Short: "Unset a configuration value",
		Long:  "Remove a configuration value so the built-in default applies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			key := args[0]

			config := loadConfig()

			switch key {
			case keyOutput:
				config.Output = ""
			case keyEndpoint:
				config.Endpoint = ""
			case keyProfile:
				config.Profile = ""
			case "service":
				config.ServiceID = ""
			case keyServiceVersion:
				config.ServiceVersion = 0
			case keyCache:
				config.Cache = ""
			case keyCacheAddr:
				config.CacheAddr = ""
			default:
				return fmt.Errorf("%w: %s", constants.ErrUnknownConfigKey, key)
			}

			err := saveConfig(config)
			if err != nil {
				return err
			}

			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Unset %s\n", key)

			return nil
		},
	}
}

func loadConfig() *Config {
	return &Config{
		Output:         viper.GetString(keyOutput),
		Endpoint:       viper.GetString(keyEndpoint),
		Profile:        viper.GetString(keyProfile),
		ServiceID:      viper.GetString(keyServiceID),
		ServiceVersion: viper.GetInt(keyServiceVersion),
		Cache:          viper.GetString(keyCache),
		CacheAddr:      viper.GetString(keyCacheAddr),
	}
}

func configFilePath() (string, error) {
	if configFile := viper.GetString(keyConfig); configFile != "" {
		return configFile, nil
	}

	if configFile := viper.ConfigFileUsed(); configFile != "" {
		return configFile, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}

	return filepath.Join(home, ".fastly", "config.yml"), nil
}

func saveConfig(config *Config) error {
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

	return nil
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

func versionText(number int) string {
	if number <= 0 {
		return "active"
	}

	return strconv.Itoa(number)
}
