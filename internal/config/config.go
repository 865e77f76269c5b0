package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	libconfig "evkiosk/libs/config"
)

// HTTPConfig holds the listener settings.
type HTTPConfig struct {
	Port string `yaml:"port" env:"KIOSK_HTTP_PORT"`
}

// RedisConfig covers both persistence scopes. TabTTL bounds the
// session-scoped keys; handoff keys are not expired by the store.
type RedisConfig struct {
	Addr     string `yaml:"addr" env:"KIOSK_REDIS_ADDR"`
	Password string `yaml:"password" env:"KIOSK_REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"KIOSK_REDIS_DB"`
	TabTTL   int    `yaml:"tabTtlSeconds" env:"KIOSK_REDIS_TAB_TTL"`
}

// DatabaseConfig is optional. An empty DSN disables receipt storage.
type DatabaseConfig struct {
	DSN string `yaml:"dsn" env:"KIOSK_POSTGRES_DSN"`
}

// AuthConfig secures the operator endpoints.
type AuthConfig struct {
	OperatorPinHash string        `yaml:"operatorPinHash" env:"KIOSK_OPERATOR_PIN_HASH"`
	JWTSecret       string        `yaml:"jwtSecret" env:"KIOSK_JWT_SECRET"`
	TokenTTL        time.Duration `yaml:"tokenTtl" env:"KIOSK_TOKEN_TTL"`
}

// ChargingConfig tunes the simulation.
type ChargingConfig struct {
	EstimatedMinutes int `yaml:"estimatedMinutes" env:"KIOSK_CHARGE_ESTIMATED_MINUTES"`
}

// Config defines kiosk service configuration.
type Config struct {
	KioskID  string         `yaml:"kioskId" env:"KIOSK_ID"`
	HTTP     HTTPConfig     `yaml:"http"`
	Redis    RedisConfig    `yaml:"redis"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Charging ChargingConfig `yaml:"charging"`
}

// Load reads configuration via shared helper.
func Load() (*Config, error) {
	cfg := &Config{
		KioskID: "kiosk-a",
		HTTP:    HTTPConfig{Port: "8085"},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			TabTTL: 86400,
		},
		Auth: AuthConfig{
			TokenTTL: time.Hour,
		},
		Charging: ChargingConfig{
			EstimatedMinutes: 30,
		},
	}

	if err := libconfig.LoadConfig(cfg); err != nil {
		return nil, err
	}

	if strings.TrimSpace(cfg.KioskID) == "" {
		return nil, errors.New("config: kiosk id required")
	}
	if strings.TrimSpace(cfg.Redis.Addr) == "" {
		return nil, errors.New("config: redis addr required")
	}
	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		return nil, errors.New("config: jwt secret required")
	}
	if strings.TrimSpace(cfg.Auth.OperatorPinHash) == "" {
		return nil, errors.New("config: operator pin hash required")
	}
	return cfg, nil
}

// HTTPAddress returns :port style.
func (c *Config) HTTPAddress() string {
	port := strings.TrimSpace(c.HTTP.Port)
	if port == "" {
		port = "8085"
	}
	if strings.HasPrefix(port, ":") {
		return port
	}
	return fmt.Sprintf(":%s", port)
}

// TabTTL returns the session scope expiry as duration.
func (c *Config) TabTTL() time.Duration {
	if c.Redis.TabTTL <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Redis.TabTTL) * time.Second
}
