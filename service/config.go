package service

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds the settings for one service instance. SenderDomain and
// SigningKey are required; everything else has a working default.
type Config struct {
	SenderDomain string `mapstructure:"sender_domain"`
	SigningKey   string `mapstructure:"signing_key"`

	BindHost string `mapstructure:"bind_host"`
	BindPort int    `mapstructure:"bind_port"`
	Path     string `mapstructure:"path"`

	InboundWorkers   int           `mapstructure:"num_inbound_threads"`
	OutboundWorkers  int           `mapstructure:"num_outbound_threads"`
	DeliveryAttempts int           `mapstructure:"num_delivery_attempts"`
	RequestTimeout   time.Duration `mapstructure:"request_timeout"`
	RetryFactor      float64       `mapstructure:"exponential_retry_factor"`
	RetryBase        float64       `mapstructure:"exponential_retry_base"`

	// MaxInflight caps the number of concurrently handled HTTP
	// requests; excess requests are answered with 429. Zero means
	// unlimited.
	MaxInflight int `mapstructure:"max_inflight_requests"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("bind_host", "0.0.0.0")
	v.SetDefault("bind_port", 8080)
	v.SetDefault("path", "/shapeshifter/api/v3/message")
	v.SetDefault("num_inbound_threads", 10)
	v.SetDefault("num_outbound_threads", 10)
	v.SetDefault("num_delivery_attempts", 10)
	v.SetDefault("request_timeout", 30*time.Second)
	v.SetDefault("exponential_retry_factor", 1.0)
	v.SetDefault("exponential_retry_base", 2.0)
}

// LoadConfig reads a config file and returns the resulting Config.
// Values may also come from the environment with the SHAPESHIFTER_
// prefix, e.g. SHAPESHIFTER_SENDER_DOMAIN.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigFile(path)
	v.SetEnvPrefix("shapeshifter")
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		return Config{}, fmt.Errorf("service: reading config %s: %w", path, err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("service: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// withDefaults fills the zero fields of a programmatically constructed
// Config, so that embedding applications need not go through a file.
func (c Config) withDefaults() Config {
	if c.BindHost == "" {
		c.BindHost = "0.0.0.0"
	}
	if c.Path == "" {
		c.Path = "/shapeshifter/api/v3/message"
	}
	if c.InboundWorkers == 0 {
		c.InboundWorkers = 10
	}
	if c.OutboundWorkers == 0 {
		c.OutboundWorkers = 10
	}
	if c.DeliveryAttempts == 0 {
		c.DeliveryAttempts = 10
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.RetryFactor == 0 {
		c.RetryFactor = 1.0
	}
	if c.RetryBase == 0 {
		c.RetryBase = 2.0
	}
	return c
}
