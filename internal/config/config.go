// Package config loads the print-relay configuration from defaults, an optional
// YAML file and RELAY_* environment variables.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/sevigo/print-relay/internal/logger"
)

// Config holds the application's configuration values.
type Config struct {
	Server   ServerConfig  `mapstructure:"server" yaml:"server"`
	Printer  PrinterConfig `mapstructure:"printer" yaml:"printer"`
	Fetcher  FetcherConfig `mapstructure:"fetcher" yaml:"fetcher"`
	Queue    QueueConfig   `mapstructure:"queue" yaml:"queue"`
	Intake   IntakeConfig  `mapstructure:"intake" yaml:"intake"`
	Database DBConfig      `mapstructure:"database" yaml:"database"`
	Logging  logger.Config `mapstructure:"logging" yaml:"logging"`
}

type ServerConfig struct {
	Port          string `mapstructure:"port" yaml:"port"`
	WebhookSecret string `mapstructure:"webhook_secret" yaml:"webhook_secret"`
}

type PrinterConfig struct {
	Host           string        `mapstructure:"host" yaml:"host"`
	Port           int           `mapstructure:"port" yaml:"port"`
	ConnectRetries int           `mapstructure:"connect_retries" yaml:"connect_retries"`
	ConnectBackoff time.Duration `mapstructure:"connect_backoff" yaml:"connect_backoff"`
	DialTimeout    time.Duration `mapstructure:"dial_timeout" yaml:"dial_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`
	ImageMode      string        `mapstructure:"image_mode" yaml:"image_mode"`
	MaxWidth       int           `mapstructure:"max_width" yaml:"max_width"`
	CutMode        string        `mapstructure:"cut_mode" yaml:"cut_mode"`
	FeedLines      int           `mapstructure:"feed_lines" yaml:"feed_lines"`
}

// Address returns the host:port dial target.
func (p PrinterConfig) Address() string {
	return fmt.Sprintf("%s:%d", p.Host, p.Port)
}

type FetcherConfig struct {
	BaseURL  string        `mapstructure:"base_url" yaml:"base_url"`
	TempDir  string        `mapstructure:"temp_dir" yaml:"temp_dir"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
	MaxBytes int64         `mapstructure:"max_bytes" yaml:"max_bytes"`
}

type QueueConfig struct {
	// JobTimeout bounds a whole job. Zero means no deadline.
	JobTimeout time.Duration `mapstructure:"job_timeout" yaml:"job_timeout"`
}

type IntakeConfig struct {
	Redis RedisConfig `mapstructure:"redis" yaml:"redis"`
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled" yaml:"enabled"`
	Addr     string `mapstructure:"addr" yaml:"addr"`
	Password string `mapstructure:"password" yaml:"password"`
	DB       int    `mapstructure:"db" yaml:"db"`
	Channel  string `mapstructure:"channel" yaml:"channel"`
}

// DBConfig configures the optional SQL job journal.
type DBConfig struct {
	Enabled         bool          `mapstructure:"enabled" yaml:"enabled"`
	Driver          string        `mapstructure:"driver" yaml:"driver"`
	DSN             string        `mapstructure:"dsn" yaml:"dsn"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time" yaml:"conn_max_idle_time"`
	MemoryCapacity  int           `mapstructure:"memory_capacity" yaml:"memory_capacity"`
}

// MaxFetchBytes is the largest accepted fetcher.max_bytes (1 GiB).
const MaxFetchBytes int64 = 1 << 30

var (
	validImageModes = map[string]bool{"S8": true, "D8": true, "S24": true, "D24": true, "raster": true}
	validCutModes   = map[string]bool{"partial": true, "full": true}
	validDrivers    = map[string]bool{"sqlite": true, "postgres": true}
	validLogLevels  = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.webhook_secret", "")

	v.SetDefault("printer.host", "192.168.1.103")
	v.SetDefault("printer.port", 9100)
	v.SetDefault("printer.connect_retries", 3)
	v.SetDefault("printer.connect_backoff", time.Second)
	v.SetDefault("printer.dial_timeout", 5*time.Second)
	v.SetDefault("printer.write_timeout", 10*time.Second)
	v.SetDefault("printer.image_mode", "D24")
	v.SetDefault("printer.max_width", 576)
	v.SetDefault("printer.cut_mode", "partial")
	v.SetDefault("printer.feed_lines", 3)

	v.SetDefault("fetcher.base_url", "")
	v.SetDefault("fetcher.temp_dir", filepath.Join(os.TempDir(), "print-relay"))
	v.SetDefault("fetcher.timeout", 30*time.Second)
	v.SetDefault("fetcher.max_bytes", int64(10<<20))

	v.SetDefault("queue.job_timeout", time.Duration(0))

	v.SetDefault("intake.redis.enabled", false)
	v.SetDefault("intake.redis.addr", "localhost:6379")
	v.SetDefault("intake.redis.password", "")
	v.SetDefault("intake.redis.db", 0)
	v.SetDefault("intake.redis.channel", "print-events")

	v.SetDefault("database.enabled", false)
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "print-relay.db")
	v.SetDefault("database.conn_max_lifetime", 30*time.Minute)
	v.SetDefault("database.conn_max_idle_time", 5*time.Minute)
	v.SetDefault("database.memory_capacity", 200)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
}

// LoadConfig reads configuration from defaults, an optional YAML file and
// RELAY_* environment variables, in increasing order of precedence. An empty
// path looks for ./config.yaml and silently skips it when absent.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("RELAY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.Logging.Level = strings.ToLower(cfg.Logging.Level)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the values are usable.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return errors.New("server port must be set")
	}
	if c.Printer.Host == "" {
		return errors.New("printer host must be set")
	}
	if c.Printer.Port < 1 || c.Printer.Port > 65535 {
		return fmt.Errorf("printer port must be between 1 and 65535, got %d", c.Printer.Port)
	}
	if c.Printer.ConnectRetries < 1 {
		return fmt.Errorf("printer connect_retries must be at least 1, got %d", c.Printer.ConnectRetries)
	}
	if c.Printer.ConnectBackoff < 0 || c.Printer.DialTimeout < 0 || c.Printer.WriteTimeout < 0 {
		return errors.New("printer timeouts must be non-negative")
	}
	if !validImageModes[c.Printer.ImageMode] {
		return fmt.Errorf("invalid printer image_mode: %s (valid: S8, D8, S24, D24, raster)", c.Printer.ImageMode)
	}
	if !validCutModes[c.Printer.CutMode] {
		return fmt.Errorf("invalid printer cut_mode: %s (valid: partial, full)", c.Printer.CutMode)
	}
	if c.Printer.MaxWidth < 8 {
		return fmt.Errorf("printer max_width must be at least 8 dots, got %d", c.Printer.MaxWidth)
	}
	if c.Printer.FeedLines < 0 || c.Printer.FeedLines > 255 {
		return fmt.Errorf("printer feed_lines must be between 0 and 255, got %d", c.Printer.FeedLines)
	}
	if c.Fetcher.TempDir == "" {
		return errors.New("fetcher temp_dir must be set")
	}
	if c.Fetcher.Timeout < 0 || c.Queue.JobTimeout < 0 {
		return errors.New("fetcher timeout and queue job_timeout must be non-negative")
	}
	if c.Fetcher.MaxBytes <= 0 || c.Fetcher.MaxBytes > MaxFetchBytes {
		return fmt.Errorf("fetcher max_bytes must be between 1 and %d, got %d", MaxFetchBytes, c.Fetcher.MaxBytes)
	}
	if c.Intake.Redis.Enabled && (c.Intake.Redis.Addr == "" || c.Intake.Redis.Channel == "") {
		return errors.New("redis intake requires addr and channel")
	}
	if c.Database.Enabled {
		if !validDrivers[c.Database.Driver] {
			return fmt.Errorf("invalid database driver: %s (valid: sqlite, postgres)", c.Database.Driver)
		}
		if c.Database.DSN == "" {
			return errors.New("database dsn must be set when the database is enabled")
		}
	}
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid log level: %s (valid: debug, info, warn, error)", c.Logging.Level)
	}
	return nil
}

const redacted = "********"

// Redact masks secrets in place so the config can be displayed.
func (c *Config) Redact() {
	if c.Server.WebhookSecret != "" {
		c.Server.WebhookSecret = redacted
	}
	if c.Intake.Redis.Password != "" {
		c.Intake.Redis.Password = redacted
	}
	if u, err := url.Parse(c.Database.DSN); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			u.User = url.UserPassword(u.User.Username(), redacted)
			c.Database.DSN = u.String()
		}
	}
}
