// Package config wires viper configuration for the CLI. Settings are
// resolved in order: flag > environment > config.yaml > default.
package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/samiconductor/ghradl/internal/logger"
)

func Init() {
	// If a .env file exists alongside the invocation, load it before
	// viper binds the environment.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			logger.Log.Warn("could not load .env file", "err", err)
		}
	}

	viper.SetConfigName("config") // config.yaml
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		logger.Log.Debug("no config file found; using defaults")
	}

	viper.SetDefault("output", ".")
	viper.SetDefault("pattern", ".*")

	// GHRADL_TOKEN wins over the conventional GITHUB_TOKEN.
	_ = viper.BindEnv("token", "GHRADL_TOKEN", "GITHUB_TOKEN")
}

// Token returns the configured API token, or "" when unauthenticated.
func Token() string {
	return viper.GetString("token")
}

// Output returns the configured download directory.
func Output() string {
	return viper.GetString("output")
}

// Pattern returns the configured default asset pattern.
func Pattern() string {
	return viper.GetString("pattern")
}
