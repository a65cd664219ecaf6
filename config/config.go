package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Server     ServerConfig
	Admin      AdminConfig
	Cloudinary CloudinaryConfig
	Cache      CacheConfig
	App        AppConfig
}

type ServerConfig struct {
	Port           string
	AllowedOrigins []string
}

type AdminConfig struct {
	// Secret gates every mutating route. Empty means open admin, which
	// is an explicit configuration state for local development.
	Secret string
}

type CloudinaryConfig struct {
	CloudName  string
	APIKey     string
	APISecret  string
	BaseFolder string
}

type CacheConfig struct {
	RedisAddr  string
	TTLSeconds int
}

type AppConfig struct {
	Environment  string
	Version      string
	DataFile     string
	ReimportCron string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "")),
		},
		Admin: AdminConfig{
			Secret: getEnv("ADMIN_SECRET", ""),
		},
		Cloudinary: CloudinaryConfig{
			CloudName:  getEnv("CLOUDINARY_CLOUD_NAME", ""),
			APIKey:     getEnv("CLOUDINARY_API_KEY", ""),
			APISecret:  getEnv("CLOUDINARY_API_SECRET", ""),
			BaseFolder: getEnv("CLOUDINARY_BASE_FOLDER", "portfolio"),
		},
		Cache: CacheConfig{
			RedisAddr:  getEnv("REDIS_ADDR", ""),
			TTLSeconds: getEnvAsInt("CATALOG_CACHE_TTL_SECONDS", 300),
		},
		App: AppConfig{
			Environment:  getEnv("APP_ENV", "development"),
			Version:      getEnv("APP_VERSION", "1.0.0"),
			DataFile:     getEnv("DATA_FILE", "data/records.json"),
			ReimportCron: getEnv("REIMPORT_CRON", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.App.DataFile == "" {
		return fmt.Errorf("DATA_FILE is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
