package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config конфигурация сервера ассистента петиций
type Config struct {
	// Сервер
	Port string `json:"port"`

	// Каталог по умолчанию и шаблон заказа
	CatalogPath   string `json:"catalog_path"`
	PlantillaPath string `json:"plantilla_path"`

	// Хранилища загрузок (каталоги, петиции, сопоставления)
	StoreCapacity int           `json:"store_capacity"`
	StoreTTL      time.Duration `json:"store_ttl"`

	// Лимиты
	MaxUploadBytes int64   `json:"max_upload_bytes"`
	RateLimitRPS   float64 `json:"rate_limit_rps"`
	RateLimitBurst int     `json:"rate_limit_burst"`

	// Логирование
	LogLevel string `json:"log_level"`
}

// LoadConfig загружает конфигурацию из переменных окружения с умолчаниями
func LoadConfig() (*Config, error) {
	config := &Config{
		Port: getEnv("SERVER_PORT", "8000"),

		CatalogPath:   getEnv("CATALOG_PATH", "catalogue.xlsx"),
		PlantillaPath: getEnv("PLANTILLA_PATH", "plantilla_pedido.xlsx"),

		StoreCapacity: getEnvInt("STORE_CAPACITY", 100),
		StoreTTL:      getEnvDuration("STORE_TTL", 4*time.Hour),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_MB", 50)) << 20,
		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 20),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 40),

		LogLevel: getEnv("LOG_LEVEL", "INFO"),
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("port must not be empty")
	}
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("port must be numeric, got %q", c.Port)
	}
	if c.StoreCapacity <= 0 {
		return fmt.Errorf("store capacity must be positive, got %d", c.StoreCapacity)
	}
	if c.MaxUploadBytes <= 0 {
		return fmt.Errorf("max upload size must be positive")
	}
	if c.RateLimitRPS <= 0 || c.RateLimitBurst <= 0 {
		return fmt.Errorf("rate limit must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
