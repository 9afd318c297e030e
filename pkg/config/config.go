package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// Config is the application configuration, read from a YAML file with
// flag overrides on top.
type Config struct {
	Verbose bool       `mapstructure:"verbose"`
	YNAB    YNABConfig `mapstructure:"ynab"`
}

// YNABConfig holds the YNAB specific configuration. The access token is
// never stored in the file, only the name of the environment variable
// holding it.
type YNABConfig struct {
	BudgetID string `mapstructure:"budget_id"`
	TokenEnv string `mapstructure:"token_env"`
}

// Build loads configuration from cfgFile (or ./config.yaml when empty)
// and binds the given command flags over it.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault("ynab.token_env", "YNAB_TOKEN")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// Token resolves the YNAB access token from the environment, loading a
// .env file first when one is present.
func (c *Config) Token() (string, error) {
	_ = gotenv.Load()

	token := os.Getenv(c.YNAB.TokenEnv)
	if token == "" {
		return "", fmt.Errorf("environment variable %s is not set", c.YNAB.TokenEnv)
	}
	return token, nil
}
