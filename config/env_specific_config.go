package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// DefaultConfig returns the configuration applied when nothing is
// overridden for the given environment.
func DefaultConfig(env Environment) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Environment:            env,
			Host:                   DefaultHost,
			Port:                   DefaultPort,
			AllowedOrigins:         []string{"*"},
			ShutdownTimeoutSeconds: 10,
		},
		LogLevel: "info",
	}

	if env == EnvProduction {
		// Containers publish the port, so listen on every interface.
		cfg.Server.Host = "0.0.0.0"
		cfg.Server.ShutdownTimeoutSeconds = 30
	} else {
		cfg.Health.Watch = true
		cfg.LogLevel = "debug"
	}

	return cfg
}

// MarshalYAML renders cfg in the format accepted through CONFIG_FILE.
func MarshalYAML(cfg *Config) ([]byte, error) {
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	return out, nil
}

// CreateConfigTemplateForEnvironment writes the default configuration for
// env to path. An existing file is never overwritten.
func CreateConfigTemplateForEnvironment(path string, env Environment) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("configuration file already exists: %s", path)
	}

	cfg := DefaultConfig(env)
	if err := validateConfig(cfg); err != nil {
		return fmt.Errorf("invalid template for %s: %w", env, err)
	}

	out, err := MarshalYAML(cfg)
	if err != nil {
		return err
	}

	header := fmt.Sprintf("# Config for %s environment\n", env)
	if err := os.WriteFile(path, append([]byte(header), out...), 0o644); err != nil {
		return fmt.Errorf("failed to write config template: %w", err)
	}
	return nil
}
