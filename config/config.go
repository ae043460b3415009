// Package config handles loading and validation of application configuration
// from environment variables and an optional configuration file.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/NomadCrew/pett-server/logger"
	"github.com/spf13/viper"
)

// Environment represents the application's running environment (development or production).
type Environment string

const (
	EnvDevelopment Environment = "development"
	EnvProduction  Environment = "production"

	// DefaultHost is the loopback interface the server binds to by default.
	DefaultHost = "127.0.0.1"
	// DefaultPort is the port the server binds to by default.
	DefaultPort = "8000"
)

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Environment    Environment `mapstructure:"ENVIRONMENT" yaml:"environment"`
	Host           string      `mapstructure:"HOST" yaml:"host"`
	Port           string      `mapstructure:"PORT" yaml:"port"`
	AllowedOrigins []string    `mapstructure:"ALLOWED_ORIGINS" yaml:"allowed_origins"`
	// RootDir overrides the directory health.txt is read from. When empty the
	// directory of the running executable is used.
	RootDir string `mapstructure:"ROOT_DIR" yaml:"root_dir,omitempty"`
	// ShutdownTimeoutSeconds bounds how long in-flight requests may take to
	// finish once a termination signal is received.
	ShutdownTimeoutSeconds int `mapstructure:"SHUTDOWN_TIMEOUT_SECONDS" yaml:"shutdown_timeout_seconds"`
}

// Address returns the host:port pair the server listens on.
func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// HealthConfig holds configuration for the health subsystem.
type HealthConfig struct {
	// Watch enables logging of health file transitions as they happen.
	Watch bool `mapstructure:"WATCH" yaml:"watch"`
}

// Config aggregates all application configuration sections.
type Config struct {
	Server   ServerConfig `mapstructure:"SERVER" yaml:"server"`
	Health   HealthConfig `mapstructure:"HEALTH" yaml:"health"`
	LogLevel string       `mapstructure:"LOG_LEVEL" yaml:"log_level"`
}

// IsDevelopment returns true if the application is running in development environment.
func (c *Config) IsDevelopment() bool {
	return c.Server.Environment == EnvDevelopment
}

// IsProduction returns true if the application is running in production environment.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == EnvProduction
}

// bindEnvVars binds multiple environment variables to config keys.
// Format: []{configKey, envVar}
func bindEnvVars(v *viper.Viper, bindings [][2]string) error {
	for _, b := range bindings {
		if err := v.BindEnv(b[0], b[1]); err != nil {
			return fmt.Errorf("failed to bind %s: %w", b[0], err)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER.ENVIRONMENT", EnvDevelopment)
	v.SetDefault("SERVER.HOST", DefaultHost)
	v.SetDefault("SERVER.PORT", DefaultPort)
	v.SetDefault("SERVER.ALLOWED_ORIGINS", []string{"*"})
	v.SetDefault("SERVER.ROOT_DIR", "")
	v.SetDefault("SERVER.SHUTDOWN_TIMEOUT_SECONDS", 10)
	v.SetDefault("HEALTH.WATCH", false)
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig loads configuration using Viper. Defaults are applied first,
// then the file named by CONFIG_FILE (if any), then environment variables.
// The result is validated before being returned.
func LoadConfig() (*Config, error) {
	v := viper.New()
	log := logger.GetLogger()

	setDefaults(v)

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envBindings := [][2]string{
		{"SERVER.ENVIRONMENT", "SERVER_ENVIRONMENT"},
		{"SERVER.HOST", "HOST"},
		{"SERVER.PORT", "PORT"},
		{"SERVER.ALLOWED_ORIGINS", "ALLOWED_ORIGINS"},
		{"SERVER.ROOT_DIR", "PETT_ROOT_DIR"},
		{"SERVER.SHUTDOWN_TIMEOUT_SECONDS", "SHUTDOWN_TIMEOUT_SECONDS"},
		{"HEALTH.WATCH", "HEALTH_WATCH"},
		{"LOG_LEVEL", "LOG_LEVEL"},
		{"CONFIG_FILE", "CONFIG_FILE"},
	}
	if err := bindEnvVars(v, envBindings); err != nil {
		return nil, err
	}

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
		}
		log.Infow("Configuration file loaded", "file", v.ConfigFileUsed())
	}

	log.Infow("Configuration loaded",
		"environment", v.GetString("SERVER.ENVIRONMENT"),
		"server_host", v.GetString("SERVER.HOST"),
		"server_port", v.GetString("SERVER.PORT"),
		"root_dir", v.GetString("SERVER.ROOT_DIR"),
		"health_watch", v.GetBool("HEALTH.WATCH"),
	)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config unmarshal failed: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	log.Info("Configuration validated successfully")
	return &cfg, nil
}

// validateConfig checks if the loaded configuration values are valid.
func validateConfig(cfg *Config) error {
	switch cfg.Server.Environment {
	case EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q", cfg.Server.Environment)
	}

	if cfg.Server.Host == "" {
		return fmt.Errorf("server host is required")
	}
	if cfg.Server.Port == "" {
		return fmt.Errorf("server port is required")
	}
	port, err := strconv.Atoi(cfg.Server.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("invalid server port %q", cfg.Server.Port)
	}

	if !containsWildcard(cfg.Server.AllowedOrigins) {
		for _, origin := range cfg.Server.AllowedOrigins {
			if err := validateOrigin(origin); err != nil {
				return fmt.Errorf("invalid allowed origin '%s': %w", origin, err)
			}
		}
	}

	if cfg.Server.ShutdownTimeoutSeconds <= 0 {
		return fmt.Errorf("shutdown timeout must be positive")
	}

	return nil
}

// validateOrigin accepts an absolute origin URL or a "*.domain" subdomain
// pattern.
func validateOrigin(origin string) error {
	if domain, ok := strings.CutPrefix(origin, "*."); ok {
		if domain == "" || strings.ContainsAny(domain, "/:*") {
			return fmt.Errorf("subdomain pattern needs a bare domain")
		}
		if _, err := url.ParseRequestURI("https://" + domain); err != nil {
			return err
		}
		return nil
	}
	_, err := url.ParseRequestURI(origin)
	return err
}

// containsWildcard checks if the list of allowed origins contains the wildcard "*".
func containsWildcard(origins []string) bool {
	for _, origin := range origins {
		if origin == "*" {
			return true
		}
	}
	return false
}
