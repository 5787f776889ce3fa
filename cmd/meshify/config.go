package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/dm/meshify/internal/engine"
	"github.com/dm/meshify/internal/model"
)

const (
	defaultBackendURL     = "http://localhost:8080"
	defaultPollInterval   = 10 * time.Second
	defaultRequestTimeout = 5 * time.Second
	defaultAPIAddr        = "127.0.0.1:8686"
)

// cliConfig holds everything meshify reads from file and environment.
type cliConfig struct {
	BackendURL     string        `mapstructure:"backend-url" validate:"required,url"`
	PollInterval   time.Duration `mapstructure:"poll-interval" validate:"gt=0"`
	RequestTimeout time.Duration `mapstructure:"request-timeout" validate:"gt=0"`
	MaxConcurrent  int           `mapstructure:"max-concurrent" validate:"gte=0"`
	Insecure       bool          `mapstructure:"insecure"`
	Username       string        `mapstructure:"username"`
	Password       string        `mapstructure:"password"`
	Token          string        `mapstructure:"token"`
	HistorySize    int           `mapstructure:"history-size" validate:"gte=0"`
	APIAddr        string        `mapstructure:"api-addr" validate:"required,hostname_port"`
	LogMode        string        `mapstructure:"log-mode" validate:"omitempty,oneof=console file"`
	LogPath        string        `mapstructure:"log-path"`
	LogLevel       string        `mapstructure:"log-level" validate:"oneof=debug info error severe"`
	// Endpoints overrides endpoint paths: endpoints.<view>.<label>.
	Endpoints engine.Paths `mapstructure:"endpoints"`
}

var validate = validator.New()

func loadCLIConfig(configPath string) (cliConfig, error) {
	var cfg cliConfig

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, fmt.Errorf("finding home directory: %w", err)
	}

	v := viper.New()
	v.SetEnvPrefix("MESHIFY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))

	v.SetDefault("backend-url", defaultBackendURL)
	v.SetDefault("poll-interval", defaultPollInterval)
	v.SetDefault("request-timeout", defaultRequestTimeout)
	v.SetDefault("max-concurrent", 0)
	v.SetDefault("insecure", false)
	v.SetDefault("username", "")
	v.SetDefault("password", "")
	v.SetDefault("token", "")
	v.SetDefault("history-size", model.DefaultHistoryCap)
	v.SetDefault("api-addr", defaultAPIAddr)
	v.SetDefault("log-mode", "")
	v.SetDefault("log-path", filepath.Join(home, ".config", "meshify", "logs"))
	v.SetDefault("log-level", "info")

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigFile(filepath.Join(home, ".config", "meshify", "config.yml"))
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFound) && !os.IsNotExist(err) {
			return cfg, err
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, err
	}
	if err := cfg.validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c cliConfig) validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	known := make(map[string]struct{})
	for _, name := range engine.Names() {
		known[name] = struct{}{}
	}
	for view := range c.Endpoints {
		if _, ok := known[view]; !ok {
			return fmt.Errorf("invalid config: endpoints: unknown view %q (available: %s)", view, strings.Join(engine.Names(), ", "))
		}
	}
	return nil
}
