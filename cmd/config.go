package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvPrefix     = "SERVICEDESK_"
	ConfigPathEnv = EnvPrefix + "CONFIG"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

var ErrJWTSecretIsRequired = errors.New("auth.jwt_secret is required")

type HTTPConfig struct {
	ListenAddr     string        `env:"LISTEN_ADDR" yaml:"listen_addr"`
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT" yaml:"request_timeout"`
}

type DBConfig struct {
	Host     string `env:"HOST" yaml:"host"`
	Port     string `env:"PORT" yaml:"port"`
	User     string `env:"USER" yaml:"user"`
	Password string `env:"PASSWORD" yaml:"password"`
	Name     string `env:"NAME" yaml:"name"`
	SslMode  string `env:"SSLMODE" yaml:"sslmode"`
}

// DSN returns the connection string in key=value form.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Name, c.SslMode)
}

type LogConfig struct {
	// Format is one of text, json or logfmt.
	Format     string `env:"FORMAT" yaml:"format"`
	Level      string `env:"LEVEL" yaml:"level"`
	TimeFormat string `env:"TIME_FORMAT" yaml:"time_format"`
}

type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET" yaml:"jwt_secret"`
	Issuer    string        `env:"ISSUER" yaml:"issuer"`
	CacheSize int           `env:"CACHE_SIZE" yaml:"cache_size"`
	CacheTTL  time.Duration `env:"CACHE_TTL" yaml:"cache_ttl"`
}

type JobsConfig struct {
	RetrySchedule  string        `env:"RETRY_SCHEDULE" yaml:"retry_schedule"`
	RetryBatchSize int           `env:"RETRY_BATCH_SIZE" yaml:"retry_batch_size"`
	QueueSize      int           `env:"QUEUE_SIZE" yaml:"queue_size"`
	QueueWorkers   int           `env:"QUEUE_WORKERS" yaml:"queue_workers"`
	ProposeTimeout time.Duration `env:"PROPOSE_TIMEOUT" yaml:"propose_timeout"`
}

type NotifyConfig struct {
	Concurrency      int64         `env:"CONCURRENCY" yaml:"concurrency"`
	Timeout          time.Duration `env:"TIMEOUT" yaml:"timeout"`
	SubscriberBuffer int           `env:"SUBSCRIBER_BUFFER" yaml:"subscriber_buffer"`
}

type TelemetryConfig struct {
	OTLPEndpoint string `env:"OTLP_ENDPOINT" yaml:"otlp_endpoint"`
}

type Config struct {
	Env       string          `env:"ENV" yaml:"env"`
	HTTP      HTTPConfig      `envPrefix:"HTTP_" yaml:"http"`
	DB        DBConfig        `envPrefix:"DB_" yaml:"db"`
	Log       LogConfig       `envPrefix:"LOG_" yaml:"log"`
	Auth      AuthConfig      `envPrefix:"AUTH_" yaml:"auth"`
	Jobs      JobsConfig      `envPrefix:"JOBS_" yaml:"jobs"`
	Notify    NotifyConfig    `envPrefix:"NOTIFY_" yaml:"notify"`
	Telemetry TelemetryConfig `envPrefix:"TELEMETRY_" yaml:"telemetry"`
}

func (c Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// DefaultConfig returns the configuration used when no file or environment
// variable overrides a value.
func DefaultConfig() Config {
	return Config{
		Env: EnvDevelopment,
		HTTP: HTTPConfig{
			ListenAddr:     ":8080",
			RequestTimeout: 10 * time.Second,
		},
		DB: DBConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "servicedesk",
			SslMode: "disable",
		},
		Log: LogConfig{
			Format:     "text",
			Level:      "info",
			TimeFormat: time.DateTime,
		},
		Auth: AuthConfig{
			Issuer:    "servicedesk",
			CacheSize: 1024,
			CacheTTL:  time.Minute,
		},
		Jobs: JobsConfig{
			RetrySchedule:  "@every 30s",
			RetryBatchSize: 100,
			QueueSize:      256,
			QueueWorkers:   4,
			ProposeTimeout: 10 * time.Second,
		},
		Notify: NotifyConfig{
			Concurrency:      8,
			Timeout:          5 * time.Second,
			SubscriberBuffer: 16,
		},
	}
}

// LoadConfig starts from DefaultConfig, applies the YAML file named by
// SERVICEDESK_CONFIG when set, then SERVICEDESK_* environment variables.
// A .env file in the working directory is loaded into the environment first.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := DefaultConfig()
	if path := os.Getenv(ConfigPathEnv); path != "" {
		if err := parseFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse environment variables: %w", err)
	}

	return cfg, cfg.Validate()
}

func parseFile(cfg *Config, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}

	defer f.Close() //nolint:errcheck
	if err := yaml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func (c Config) Validate() error {
	var errs []error
	switch c.Env {
	case EnvDevelopment, EnvProduction:
	default:
		errs = append(errs, fmt.Errorf("env must be %s or %s, got %q", EnvDevelopment, EnvProduction, c.Env))
	}
	if c.Auth.JWTSecret == "" {
		errs = append(errs, ErrJWTSecretIsRequired)
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json", "logfmt":
	default:
		errs = append(errs, fmt.Errorf("log.format must be text, json or logfmt, got %q", c.Log.Format))
	}
	if c.Jobs.QueueWorkers < 1 {
		errs = append(errs, fmt.Errorf("jobs.queue_workers must be positive, got %d", c.Jobs.QueueWorkers))
	}
	if c.Notify.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("notify.concurrency must be positive, got %d", c.Notify.Concurrency))
	}
	return errors.Join(errs...)
}
