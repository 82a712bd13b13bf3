package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config holds the runtime settings shared by the CLI, the directory
// processor and the HTTP server.
// Keys match the pflag names bound in cmd/cli, so the same name works in
// config.yaml, as a SALESBOOK_* environment variable and as a flag.
type Config struct {
	OutputPath string `mapstructure:"output"`
	Port       string `mapstructure:"port"`
	LogLevel   string `mapstructure:"log-level"`
}

// Build loads configuration from, in increasing precedence: defaults, an
// optional YAML config file (config.yaml in the working directory unless
// cfgFile names one), SALESBOOK_* environment variables, and command-line
// flags.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	_ = gotenv.Load() // a missing .env is fine

	v := viper.New()
	v.SetDefault("port", "3000")
	v.SetDefault("log-level", "info")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("SALESBOOK")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("failed to bind flags: %w", err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if cfgFile != "" {
			// an explicitly named file must exist
			return nil, fmt.Errorf("failed to read config file %s: %w", cfgFile, err)
		}
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}
