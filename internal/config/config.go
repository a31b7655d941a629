// internal/config/config.go
package config

import (
	"errors"
	"net/url"
	"strings"

	"github.com/spf13/viper"
)

// Config is the deployment configuration for the launchpad CLI and daemon.
// It is distinct from the on-ledger policy record, which is managed through
// the configure operation.
type Config struct {
	StateFile     string `mapstructure:"state_file"`
	SeedAuthority string `mapstructure:"seed_authority"`
	WebhookURL    string `mapstructure:"webhook_url"`
	Development   bool   `mapstructure:"development"`
}

const DefaultStateFile = "launchpad.state"

// Load reads the config file at path, applying defaults and environment
// overrides with the LAUNCHPAD prefix.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetDefault("state_file", DefaultStateFile)
	v.SetDefault("development", false)

	v.SetEnvPrefix("LAUNCHPAD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return &cfg, validate(&cfg)
}

func validate(cfg *Config) error {
	if cfg.StateFile == "" {
		return errors.New("state_file is empty")
	}
	if cfg.SeedAuthority == "" {
		return errors.New("missing seed_authority in configuration")
	}
	if cfg.WebhookURL != "" {
		parsed, err := url.Parse(cfg.WebhookURL)
		if err != nil || !strings.HasPrefix(parsed.Scheme, "http") {
			return errors.New("invalid webhook URL")
		}
	}
	return nil
}
