// Package configpkg provides parsing functionality for environment variables.
package configpkg

import (
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
//
// The values are read by viper fron a config file or environement variables.
type Config struct {
	ServerAddress   string `mapstructure:"SERVER_ADDRESS"`
	Environment     string `mapstructure:"GO_ENV"`
	MetricsPath     string `mapstructure:"METRICS_PATH"`
	DefaultPageSize int32  `mapstructure:"DEFAULT_PAGE_SIZE"`
}

// Load read configuration from file or environment variables.
//
// Environment variables take precedence over the app.env file found in path.
func Load(path string) (Config, error) {
	var c Config

	v := viper.New()

	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("GO_ENV", "production")
	v.SetDefault("METRICS_PATH", "/metrics")
	v.SetDefault("DEFAULT_PAGE_SIZE", 10)

	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		return c, err
	}

	err = v.Unmarshal(&c)
	if err != nil {
		return c, err
	}

	return c, nil
}
