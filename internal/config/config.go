package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix префикс переменных окружения, переопределяющих config.toml
// (например, PITCHBOOKING_DATABASE_PASSWORD)
const EnvPrefix = "PITCHBOOKING"

// Config конфигурация сервиса
type Config struct {
	Server       ServerConfig       `toml:"server"`
	Database     DatabaseConfig     `toml:"database"`
	Logs         LogsConfig         `toml:"logs"`
	Metrics      MetricsConfig      `toml:"metrics"`
	Auth         AuthConfig         `toml:"auth"`
	Payment      PaymentConfig      `toml:"payment"`
	Availability AvailabilityConfig `toml:"availability"`
	Redis        RedisConfig        `toml:"redis"`
	RabbitMQ     RabbitMQConfig     `toml:"rabbitmq" envconfig:"RABBITMQ"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port" split_words:"true"`
	ReadTimeout     int `toml:"read_timeout" split_words:"true"`
	WriteTimeout    int `toml:"write_timeout" split_words:"true"`
	IdleTimeout     int `toml:"idle_timeout" split_words:"true"`
	ShutdownTimeout int `toml:"shutdown_timeout" split_words:"true"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname" envconfig:"DBNAME"`
	SSLMode         string `toml:"sslmode" envconfig:"SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" split_words:"true"`
	MaxIdleConns    int    `toml:"max_idle_conns" split_words:"true"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" split_words:"true"` // секунды
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки Prometheus
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name" split_words:"true"`
}

// AuthConfig настройки проверки JWT
type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" envconfig:"JWT_SECRET"`
}

// PaymentConfig настройки платежного шлюза
type PaymentConfig struct {
	Enabled              bool   `toml:"enabled"`
	PublicKey            string `toml:"public_key" split_words:"true"`
	SecretKey            string `toml:"secret_key" split_words:"true"`
	Currency             string `toml:"currency"`
	ReturnURL            string `toml:"return_url" envconfig:"RETURN_URL"`
	PendingTTLMinutes    int    `toml:"pending_ttl_minutes" envconfig:"PENDING_TTL_MINUTES"`
	SweepIntervalSeconds int    `toml:"sweep_interval_seconds" split_words:"true"`
}

// AvailabilityConfig настройки чтения занятости
type AvailabilityConfig struct {
	MaxRetries   int `toml:"max_retries" split_words:"true"`
	RetryDelayMs int `toml:"retry_delay_ms" split_words:"true"`
}

// RedisConfig настройки realtime-канала уведомлений
type RedisConfig struct {
	Enabled       bool   `toml:"enabled"`
	Addr          string `toml:"addr"`
	Password      string `toml:"password"`
	DB            int    `toml:"db"`
	ChannelPrefix string `toml:"channel_prefix" split_words:"true"`
}

// RabbitMQConfig настройки публикации событий в RabbitMQ
type RabbitMQConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

// Load читает config.toml, подгружает .env из той же директории (если есть)
// и применяет переопределения из окружения
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	envFile := filepath.Join(filepath.Dir(path), ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: load %s: %w", envFile, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("config: env overrides: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "pitch-booking-service"
	}
	if c.Payment.Currency == "" {
		c.Payment.Currency = "thb"
	}
	if c.Payment.PendingTTLMinutes == 0 {
		c.Payment.PendingTTLMinutes = 30
	}
	if c.Payment.SweepIntervalSeconds == 0 {
		c.Payment.SweepIntervalSeconds = 60
	}
	if c.Availability.MaxRetries == 0 {
		c.Availability.MaxRetries = 3
	}
	if c.Availability.RetryDelayMs == 0 {
		c.Availability.RetryDelayMs = 200
	}
	if c.Redis.ChannelPrefix == "" {
		c.Redis.ChannelPrefix = "pitchbooking"
	}
	if c.RabbitMQ.Exchange == "" {
		c.RabbitMQ.Exchange = "reservations.exchange"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("config: database host and dbname are required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("config: auth.jwt_secret is required")
	}
	if c.Payment.Enabled && (c.Payment.PublicKey == "" || c.Payment.SecretKey == "") {
		return errors.New("config: payment keys are required when payment is enabled")
	}
	if c.Payment.Enabled && c.Payment.ReturnURL == "" {
		return errors.New("config: payment.return_url is required when payment is enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("config: redis.addr is required when redis is enabled")
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.URL == "" {
		return errors.New("config: rabbitmq.url is required when rabbitmq is enabled")
	}
	if c.Availability.MaxRetries < 0 {
		return errors.New("config: availability.max_retries must not be negative")
	}
	return nil
}
