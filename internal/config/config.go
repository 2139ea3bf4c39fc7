package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. SITEHUB_SERVER_PORT.
const EnvPrefix = "SITEHUB"

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Session    SessionConfig    `mapstructure:"session"`
	Chat       ChatConfig       `mapstructure:"chat"`
	Forms      FormsConfig      `mapstructure:"forms"`
	Messaging  MessagingConfig  `mapstructure:"messaging"`
	RateLimit  RateLimitConfig  `mapstructure:"rate_limit"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Monitoring MonitoringConfig `mapstructure:"monitoring"`
}

type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	MaxBodyBytes    int64         `mapstructure:"max_body_bytes"`
}

type LoggingConfig struct {
	Level   string `mapstructure:"level"`
	Console bool   `mapstructure:"console"`
}

type SessionConfig struct {
	TTL             time.Duration `mapstructure:"ttl"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type ChatConfig struct {
	AutoReply  bool          `mapstructure:"auto_reply"`
	ReplyDelay time.Duration `mapstructure:"reply_delay"`
	ReplyName  string        `mapstructure:"reply_name"`
	ReplyText  string        `mapstructure:"reply_text"`
}

type FormsConfig struct {
	Delay time.Duration `mapstructure:"delay"`
}

type MessagingConfig struct {
	// Driver is "memory" or "redis".
	Driver string      `mapstructure:"driver"`
	Buffer int         `mapstructure:"buffer"`
	Redis  RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	URL          string        `mapstructure:"url"`
	MaxRetries   int           `mapstructure:"max_retries"`
	RetryBackoff time.Duration `mapstructure:"retry_backoff"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
}

type RateLimitConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
	Burst             int     `mapstructure:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type MonitoringConfig struct {
	Namespace      string `mapstructure:"namespace"`
	MetricsEnabled bool   `mapstructure:"metrics_enabled"`
}

// envOverrides lists the settings that can be replaced from the
// environment. Unset variables leave the file value alone.
type envOverrides struct {
	ServerPort      *int           `envconfig:"SERVER_PORT"`
	ServerMode      *string        `envconfig:"SERVER_MODE"`
	LogLevel        *string        `envconfig:"LOG_LEVEL"`
	LogConsole      *bool          `envconfig:"LOG_CONSOLE"`
	SessionTTL      *time.Duration `envconfig:"SESSION_TTL"`
	ChatReplyDelay  *time.Duration `envconfig:"CHAT_REPLY_DELAY"`
	FormsDelay      *time.Duration `envconfig:"FORMS_DELAY"`
	MessagingDriver *string        `envconfig:"MESSAGING_DRIVER"`
	RedisURL        *string        `envconfig:"REDIS_URL"`
	RateLimit       *bool          `envconfig:"RATE_LIMIT_ENABLED"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.request_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "5s")
	v.SetDefault("server.max_body_bytes", 256<<10)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.console", false)

	v.SetDefault("session.ttl", "30m")
	v.SetDefault("session.cleanup_interval", "5m")

	v.SetDefault("chat.auto_reply", true)
	v.SetDefault("chat.reply_delay", "2s")
	v.SetDefault("chat.reply_name", "Construction Team")
	v.SetDefault("chat.reply_text", "Thanks for your message! Our team will get back to you shortly.")

	v.SetDefault("forms.delay", "1500ms")

	v.SetDefault("messaging.driver", "memory")
	v.SetDefault("messaging.buffer", 64)
	v.SetDefault("messaging.redis.url", "redis://localhost:6379/0")
	v.SetDefault("messaging.redis.max_retries", 3)
	v.SetDefault("messaging.redis.retry_backoff", "100ms")
	v.SetDefault("messaging.redis.pool_size", 10)
	v.SetDefault("messaging.redis.min_idle_conns", 2)

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_second", 20.0)
	v.SetDefault("rate_limit.burst", 40)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("monitoring.namespace", "sitehub")
	v.SetDefault("monitoring.metrics_enabled", true)
}

// LoadConfig reads config.yml from path, or from "." and "./config" when
// path is empty. A missing file is only an error for an explicit path.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := applyEnv(&config); err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func applyEnv(config *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("failed to read environment: %w", err)
	}

	if env.ServerPort != nil {
		config.Server.Port = *env.ServerPort
	}
	if env.ServerMode != nil {
		config.Server.Mode = *env.ServerMode
	}
	if env.LogLevel != nil {
		config.Logging.Level = *env.LogLevel
	}
	if env.LogConsole != nil {
		config.Logging.Console = *env.LogConsole
	}
	if env.SessionTTL != nil {
		config.Session.TTL = *env.SessionTTL
	}
	if env.ChatReplyDelay != nil {
		config.Chat.ReplyDelay = *env.ChatReplyDelay
	}
	if env.FormsDelay != nil {
		config.Forms.Delay = *env.FormsDelay
	}
	if env.MessagingDriver != nil {
		config.Messaging.Driver = *env.MessagingDriver
	}
	if env.RedisURL != nil {
		config.Messaging.Redis.URL = *env.RedisURL
	}
	if env.RateLimit != nil {
		config.RateLimit.Enabled = *env.RateLimit
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	switch c.Messaging.Driver {
	case "memory":
	case "redis":
		if c.Messaging.Redis.URL == "" {
			return errors.New("messaging.redis.url is required for the redis driver")
		}
	default:
		return fmt.Errorf("unknown messaging driver %q", c.Messaging.Driver)
	}
	if c.Session.TTL <= 0 {
		return errors.New("session.ttl must be positive")
	}
	if c.Chat.ReplyDelay < 0 || c.Forms.Delay < 0 {
		return errors.New("delays must not be negative")
	}
	return nil
}
