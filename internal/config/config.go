package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config holds the overall configuration for the application.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Wallet    WalletConfig    `yaml:"wallet"`
	Transport TransportConfig `yaml:"transport"`
	Probe     ProbeConfig     `yaml:"probe"`
	EnvFile   string          `yaml:"envFile"`
}

// ServerConfig holds the server-specific configuration.
type ServerConfig struct {
	Port           string   `yaml:"port" validate:"required"`
	ReadTimeout    int      `yaml:"readTimeout" validate:"gte=0"`
	WriteTimeout   int      `yaml:"writeTimeout" validate:"gte=0"`
	IdleTimeout    int      `yaml:"idleTimeout" validate:"gte=0"`
	AllowedOrigins []string `yaml:"allowedOrigins" validate:"dive,required"`
}

// LoggingConfig holds the configuration for logging.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Format string `yaml:"format" validate:"omitempty,oneof=json console"`
}

// WalletConfig holds the display settings handed to the wallet-connection layer.
type WalletConfig struct {
	AppName string `yaml:"appName" validate:"required"`
	SSR     *bool  `yaml:"ssr"`
}

// TransportConfig holds the defaults for networks without a dedicated transport.
type TransportConfig struct {
	DefaultTimeoutMs int64 `yaml:"defaultTimeoutMs" validate:"gt=0"`
	DefaultBatch     *bool `yaml:"defaultBatch"`
}

// ProbeConfig holds configuration for the endpoint health prober.
type ProbeConfig struct {
	Enabled         bool  `yaml:"enabled"`
	IntervalSeconds int   `yaml:"intervalSeconds" validate:"gt=0"`
	TimeoutMs       int64 `yaml:"timeoutMs" validate:"gt=0"`
	MaxRetries      int   `yaml:"maxRetries" validate:"gte=0"`
	RetryDelayMs    int64 `yaml:"retryDelayMs" validate:"gt=0"`
	RateLimit       int   `yaml:"rateLimit" validate:"gt=0"`
	BurstLimit      int   `yaml:"burstLimit" validate:"gt=0"`
	CacheTTLSeconds int   `yaml:"cacheTTLSeconds" validate:"gt=0"`
}

// SSREnabled reports the server-rendering flag, true unless disabled explicitly.
func (w WalletConfig) SSREnabled() bool {
	return w.SSR == nil || *w.SSR
}

// BatchEnabled reports the default batching flag, true unless disabled explicitly.
func (t TransportConfig) BatchEnabled() bool {
	return t.DefaultBatch == nil || *t.DefaultBatch
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// LoadConfig loads configuration from a YAML file. A missing file yields the defaults.
func LoadConfig(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logrus.Warnf("Config file %s not found, using defaults", path)
			return Default(), nil
		}
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		logrus.Errorf("Invalid config data in %s: %v", path, err)
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals YAML data, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config data: %w", err)
	}
	applyDefaults(&cfg)

	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
		logrus.Debugf("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"http://localhost:3000"}
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}

	if cfg.Wallet.AppName == "" {
		cfg.Wallet.AppName = "GhostVote"
	}

	if cfg.Transport.DefaultTimeoutMs == 0 {
		cfg.Transport.DefaultTimeoutMs = 10000 // viem's http transport default
	}

	if cfg.Probe.IntervalSeconds == 0 {
		cfg.Probe.IntervalSeconds = 30
	}
	if cfg.Probe.TimeoutMs == 0 {
		cfg.Probe.TimeoutMs = 5000
	}
	if cfg.Probe.RetryDelayMs == 0 {
		cfg.Probe.RetryDelayMs = 200
	}
	if cfg.Probe.RateLimit == 0 {
		cfg.Probe.RateLimit = 5
	}
	if cfg.Probe.BurstLimit == 0 {
		cfg.Probe.BurstLimit = 2
	}
	if cfg.Probe.CacheTTLSeconds == 0 {
		cfg.Probe.CacheTTLSeconds = 60
	}

	if cfg.EnvFile == "" {
		cfg.EnvFile = ".env"
	}
}
