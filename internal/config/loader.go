package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/giantswarm/mcpbind/pkg/bind"
	"github.com/giantswarm/mcpbind/pkg/logging"

	"github.com/joeshaw/envdecode"
	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/mcpbind"
	configFileName = "config.yaml"
)

// osUserHomeDir is swapped in tests.
var osUserHomeDir = os.UserHomeDir

// DefaultPath returns ~/.config/mcpbind/config.yaml.
func DefaultPath() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine user config directory: %w", err)
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

// Load reads the configuration from path, or from MCPBIND_CONFIG or the
// default location when path is empty, applies environment overrides and
// validates the result.
func Load(path string) (Config, error) {
	env, err := decodeEnv()
	if err != nil {
		return Config{}, err
	}

	explicit := path != ""
	if !explicit && env.ConfigPath != "" {
		path, explicit = env.ConfigPath, true
	}
	if !explicit {
		if path, err = DefaultPath(); err != nil {
			return Config{}, &bind.ConfigError{Message: err.Error(), Err: err}
		}
	}

	cfg, err := loadFile(path, explicit)
	if err != nil {
		return Config{}, err
	}

	if env.LogLevel != "" {
		cfg.LogLevel = env.LogLevel
	}
	if env.InitTimeout != 0 {
		cfg.InitTimeout = env.InitTimeout
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFile(path string, explicit bool) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			logging.Debug("Config", "No config file found at %s, using defaults", path)
			return cfg, nil
		}
		return Config{}, &bind.ConfigError{
			Path:    path,
			Message: "cannot read file",
			Err:     err,
		}
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, &bind.ConfigError{
			Path:        path,
			Message:     fmt.Sprintf("malformed YAML: %v", err),
			Suggestions: []string{"check indentation and that 'servers' is a map of server names"},
			Err:         err,
		}
	}
	if cfg.Servers == nil {
		cfg.Servers = map[string]ServerDefinition{}
	}
	cfg.Path = path

	logging.Debug("Config", "Loaded configuration from %s", path)
	return cfg, nil
}

func decodeEnv() (envOverrides, error) {
	var env envOverrides
	if err := envdecode.Decode(&env); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return envOverrides{}, &bind.ConfigError{
			Message:     fmt.Sprintf("invalid environment: %v", err),
			Suggestions: []string{"MCPBIND_INIT_TIMEOUT takes a duration such as 30s"},
			Err:         err,
		}
	}
	return env, nil
}
