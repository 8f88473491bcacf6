package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

/* Config é um pacote auxiliar. Poderia ser uma lib externa*/

type Config struct {
	Port              string `mapstructure:"PORT"`
	RedisAddr         string `mapstructure:"REDIS_ADDR"`
	RedisPassword     string `mapstructure:"REDIS_PASSWORD"`
	RedisDB           int    `mapstructure:"REDIS_DB"`
	EndpointsFile     string `mapstructure:"ENDPOINTS_FILE"`
	LogEncryptionKey  string `mapstructure:"LOG_ENCRYPTION_KEY"`
	AuditLogCap       int64  `mapstructure:"AUDIT_LOG_CAP"`
	QueueBatchSize    int    `mapstructure:"QUEUE_BATCH_SIZE"`
	QueuePollSeconds  int    `mapstructure:"QUEUE_POLL_SECONDS"`
	DispatchTimeout   int    `mapstructure:"DISPATCH_TIMEOUT_SECONDS"`
	CompletedTTLHours int    `mapstructure:"COMPLETED_TTL_HOURS"`
	ProcessingEnabled bool   `mapstructure:"PROCESSING_ENABLED"`
	MetricsEnabled    bool   `mapstructure:"METRICS_ENABLED"`
}

func GetConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("toml")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("ENDPOINTS_FILE", "endpoints.yaml")
	viper.SetDefault("LOG_ENCRYPTION_KEY", "")
	viper.SetDefault("AUDIT_LOG_CAP", 1000)
	viper.SetDefault("QUEUE_BATCH_SIZE", 10)
	viper.SetDefault("QUEUE_POLL_SECONDS", 5)
	viper.SetDefault("DISPATCH_TIMEOUT_SECONDS", 30)
	viper.SetDefault("COMPLETED_TTL_HOURS", 24)
	viper.SetDefault("PROCESSING_ENABLED", true)
	viper.SetDefault("METRICS_ENABLED", true)

	err := viper.ReadInConfig()
	if err != nil {
		// the .env file is optional; env vars and defaults still apply
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	var config Config
	err = viper.Unmarshal(&config)
	if err != nil {
		return nil, fmt.Errorf("parsing config data: %w", err)
	}
	return &config, nil
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.QueuePollSeconds) * time.Second
}

func (c *Config) DispatchTimeoutDuration() time.Duration {
	return time.Duration(c.DispatchTimeout) * time.Second
}

func (c *Config) CompletedTTL() time.Duration {
	return time.Duration(c.CompletedTTLHours) * time.Hour
}
