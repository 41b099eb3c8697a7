// Package config загрузка конфигурации сервиса из TOML файла
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config конфигурация сервиса
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	SlotLock      SlotLockConfig      `toml:"slotlock"`
	NotifyService NotifyServiceConfig `toml:"notify_service"`
}

// ServerConfig настройки HTTP сервера
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN возвращает строку подключения к PostgreSQL
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки Prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// BookingConfig бизнес-параметры бронирования
type BookingConfig struct {
	SlotStepMinutes int     `toml:"slot_step_minutes"` // шаг сетки слотов
	PlatformFeeRate float64 `toml:"platform_fee_rate"` // доля комиссии платформы (0..1)
}

// SlotLockConfig настройки менеджера слот-локов
// Backend "memory" - референсная in-process реализация,
// "redis" - распределённый вариант с тем же контрактом
type SlotLockConfig struct {
	Backend              string `toml:"backend"` // memory | redis
	TTLMinutes           int    `toml:"ttl_minutes"`
	SweepIntervalSeconds int    `toml:"sweep_interval_seconds"`
	RedisAddr            string `toml:"redis_addr"`
	RedisPassword        string `toml:"redis_password"`
	RedisDB              int    `toml:"redis_db"`
}

// NotifyServiceConfig настройки клиента сервиса уведомлений
type NotifyServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// Load читает и валидирует конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "smp-booking-service"
	}
	if cfg.Booking.SlotStepMinutes == 0 {
		cfg.Booking.SlotStepMinutes = 30
	}
	if cfg.Booking.PlatformFeeRate == 0 {
		cfg.Booking.PlatformFeeRate = 0.10
	}
	if cfg.SlotLock.Backend == "" {
		cfg.SlotLock.Backend = "memory"
	}
	if cfg.SlotLock.TTLMinutes == 0 {
		cfg.SlotLock.TTLMinutes = 10
	}
	if cfg.SlotLock.SweepIntervalSeconds == 0 {
		cfg.SlotLock.SweepIntervalSeconds = 60
	}
	if cfg.NotifyService.Timeout == 0 {
		cfg.NotifyService.Timeout = 5
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" {
		return fmt.Errorf("config: database.host is required")
	}
	if cfg.Booking.PlatformFeeRate < 0 || cfg.Booking.PlatformFeeRate >= 1 {
		return fmt.Errorf("config: booking.platform_fee_rate must be in [0, 1)")
	}
	if cfg.SlotLock.Backend != "memory" && cfg.SlotLock.Backend != "redis" {
		return fmt.Errorf("config: slotlock.backend must be memory or redis, got %q", cfg.SlotLock.Backend)
	}
	if cfg.SlotLock.Backend == "redis" && cfg.SlotLock.RedisAddr == "" {
		return fmt.Errorf("config: slotlock.redis_addr is required for redis backend")
	}
	return nil
}
