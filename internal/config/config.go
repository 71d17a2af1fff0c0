package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/digiserve/digiserve/internal/types"
)

type Configuration struct {
	Deployment   DeploymentConfig   `validate:"required"`
	Server       ServerConfig       `validate:"required"`
	Logging      LoggingConfig      `validate:"required"`
	Notification NotificationConfig `validate:"required"`
	Suspicion    SuspicionConfig
}

type DeploymentConfig struct {
	Mode types.RunMode `validate:"required"`
}

type ServerConfig struct {
	Address string `validate:"required"`
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// NotificationConfig configures the fire-and-forget notification pipeline
type NotificationConfig struct {
	Topic string `validate:"required"`
	// WebhookURL is the optional downstream endpoint notifications are
	// delivered to; empty disables HTTP delivery (events stay on the bus).
	WebhookURL    string
	MaxRetries    int
	SubscriberCap int
}

// SuspicionConfig configures the overdue-tranche scan
type SuspicionConfig struct {
	// ScanBatchSize bounds how many payments a single scan loads at once
	ScanBatchSize int
}

func NewConfig() (*Configuration, error) {
	// Load .env if present; real env vars take precedence
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/digiserve")

	v.SetEnvPrefix("DIGISERVE")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("deployment.mode", string(types.ModeLocal))
	v.SetDefault("server.address", ":8080")
	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("notification.topic", "notifications")
	v.SetDefault("notification.maxretries", 3)
	v.SetDefault("notification.subscribercap", 100)
	v.SetDefault("suspicion.scanbatchsize", 500)
}

func (c Configuration) Validate() error {
	validate := validator.New()
	return validate.Struct(c)
}

// GetDefaultConfig returns a default configuration for local development
// and tests. This is useful for running scripts or other non-web applications.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Deployment: DeploymentConfig{Mode: types.ModeLocal},
		Server:     ServerConfig{Address: ":8080"},
		Logging:    LoggingConfig{Level: types.LogLevelDebug},
		Notification: NotificationConfig{
			Topic:         "notifications",
			MaxRetries:    3,
			SubscriberCap: 100,
		},
		Suspicion: SuspicionConfig{ScanBatchSize: 500},
	}
}
