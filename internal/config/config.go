package config

import (
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	viper "github.com/spf13/viper"
)

func loadEnv() error {
	bindings := map[string]string{
		"api_base_url":  "LABKEEPER_API_BASE_URL",
		"api_token":     "LABKEEPER_API_TOKEN",
		"user_id":       "LABKEEPER_USER_ID",
		"snapshot_path": "LABKEEPER_SNAPSHOT_PATH",
	}
	for key, env := range bindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}

	viper.SetDefault("api_base_url", "http://localhost:8080")
	viper.SetDefault("snapshot_path", "$HOME/.labkeeper/labs.db")
	viper.SetDefault("transport_timeout", "10s")
	viper.SetDefault("poll_grace", "15s")
	viper.SetDefault("poll_interval", "10s")
	viper.SetDefault("poll_attempts", 30)
	viper.SetDefault("hide_debounce", "30s")
	viper.SetDefault("sweep_interval", "2m")
	return nil
}

// NewConfig loads labkeeper configuration from $HOME/.labkeeper/labkeeper.yml
// plus environment overrides. A missing config file is fine; everything has
// a default except the values that identify the user and backend.
func NewConfig() (*Config, error) {
	if err := loadEnv(); err != nil {
		return nil, err
	}

	viper.AddConfigPath("$HOME/.labkeeper")
	viper.SetConfigType("yml")
	viper.SetConfigName("labkeeper")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, errors.Wrap(err, "reading labkeeper config")
		}
	}

	config := &Config{}
	log.Debug().Msgf("Loaded labkeeper config: api_base_url=%s", config.APIBaseURL())
	return config, nil
}

// Config exposes typed accessors over the viper-backed settings.
type Config struct{}

func (c *Config) APIBaseURL() string {
	return viper.GetString("api_base_url")
}

func (c *Config) APIToken() string {
	return viper.GetString("api_token")
}

func (c *Config) UserID() string {
	return viper.GetString("user_id")
}

// EnrolledCourses is the static course list used when no enrollment service
// is wired in. Normally populated from the config file.
func (c *Config) EnrolledCourses() []string {
	return viper.GetStringSlice("courses")
}

func (c *Config) SnapshotPath() string {
	return viper.GetString("snapshot_path")
}

func (c *Config) TransportTimeout() time.Duration {
	return viper.GetDuration("transport_timeout")
}

func (c *Config) PollGrace() time.Duration {
	return viper.GetDuration("poll_grace")
}

func (c *Config) PollInterval() time.Duration {
	return viper.GetDuration("poll_interval")
}

func (c *Config) PollAttempts() int {
	return viper.GetInt("poll_attempts")
}

func (c *Config) HideDebounce() time.Duration {
	return viper.GetDuration("hide_debounce")
}

func (c *Config) SweepInterval() time.Duration {
	return viper.GetDuration("sweep_interval")
}
