package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

type Config struct {
	Input    string `mapstructure:"input"`
	Output   string `mapstructure:"output"`
	LogLevel string `mapstructure:"log_level"`
}

// LoadFromPath reads .vers.yaml from configPath, or from the home directory
// and current directory when configPath is empty. A missing config file is
// only an error when a path was given explicitly.
func LoadFromPath(configPath string) (*Config, error) {
	v := viper.New()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName(".vers")
		v.SetConfigType("yaml")

		if homeDir, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(homeDir)
		}

		if cwd, err := os.Getwd(); err == nil {
			v.AddConfigPath(cwd)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath == "" && errors.As(err, &notFound) {
			return &Config{}, nil
		}
		if configPath != "" {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file .vers.yaml from home directory or current directory: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Output {
	case "", "render", "normalize":
	default:
		return fmt.Errorf("output must be \"render\" or \"normalize\", got %q", c.Output)
	}
	return nil
}
