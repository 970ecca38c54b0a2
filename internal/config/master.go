package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type AppConfig struct {
	DebugMode      bool
	LogLevel       string
	ServerConfig   *ServerConfig
	StoreConfig    *StoreConfig
	SheetsConfig   *SheetsConfig
	PostgresConfig *PostgresConfig
	SqliteConfig   *SqliteConfig
	RedisConfig    *RedisConfig
	ClockConfig    *ClockConfig
	RoutesConfig   *RoutesConfig
}

func NewSystemConfig() (*AppConfig, error) {
	routes, err := NewRoutesConfig()
	if err != nil {
		return nil, err
	}
	clock, err := NewClockConfig()
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{
		DebugMode:      os.Getenv("DEBUG_MODE") == "true",
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServerConfig:   NewServerConfig(),
		StoreConfig:    NewStoreConfig(),
		SheetsConfig:   NewSheetsConfig(),
		PostgresConfig: NewPostgresConfig(),
		SqliteConfig:   NewSqliteConfig(),
		RedisConfig:    NewRedisConfig(),
		ClockConfig:    clock,
		RoutesConfig:   routes,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *AppConfig) Validate() error {
	if c.ServerConfig.Port <= 0 || c.ServerConfig.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.ServerConfig.Port)
	}
	if c.ServerConfig.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive")
	}
	if c.SheetsConfig.RateLimit < 0 || c.SheetsConfig.RateBurst < 1 {
		return fmt.Errorf("SHEETS_RATE_LIMIT must be >= 0 and SHEETS_RATE_BURST >= 1")
	}
	if err := c.StoreConfig.Validate(); err != nil {
		return err
	}
	return c.RoutesConfig.Validate()
}

// getEnv gets an environment variable with a fallback
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && strings.TrimSpace(value) != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an environment variable as an integer with a fallback
func getIntEnv(key string, fallback int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	intValue, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return intValue
}

// getFloatEnv gets an environment variable as a float with a fallback
func getFloatEnv(key string, fallback float64) float64 {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return fallback
	}
	return f
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
