package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
)

const (
	GatewayKube    = "kube"
	GatewayBackend = "backend"
)

// Config instance variables
type Config struct {
	LogLevel            string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=trace debug info warn error"`
	LogPretty           bool   `envconfig:"LOG_PRETTY"`
	UseSwagger          bool   `envconfig:"USE_SWAGGER"`
	Port                string `envconfig:"PORT" default:"8080" validate:"required"`
	Gateway             string `envconfig:"GATEWAY" default:"kube" validate:"oneof=kube backend"`
	Namespace           string `envconfig:"NAMESPACE"`
	Kubeconfig          string `envconfig:"KUBECONFIG"`
	BackendURL          string `envconfig:"BACKEND_URL" validate:"required_if=Gateway backend,omitempty,url"`
	BackendRetryMax     int    `envconfig:"BACKEND_RETRY_MAX" default:"3" validate:"gte=0"`
	NotificationWebhook string `envconfig:"NOTIFICATION_WEBHOOK" validate:"omitempty,url"`
	DraftDefaultsFile   string `envconfig:"DRAFT_DEFAULTS_FILE"`
}

// Load reads the configuration from the environment
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration values
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
