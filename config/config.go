// file: config/config.go
package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every knob the application reads at boot. Values come from
// the environment, with a best-effort .env load for local development.
type Config struct {
	Port          string
	MySQLDSN      string
	RedisAddr     string
	RedisPassword string

	JWTSecret  string
	SessionTTL time.Duration

	UploadDir     string
	PublicBaseURL string

	// The auth layer requires an email per account but the product only
	// exposes usernames, so internal addresses are synthesized under this
	// domain. Never shown to users.
	AuthEmailDomain string
}

func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		MySQLDSN:        getEnv("MYSQL_DSN", "root:123456@tcp(localhost:3306)/hackong_ctf?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:   getEnv("REDIS_PASSWORD", ""),
		JWTSecret:       getEnv("JWT_SECRET", "a-very-secure-secret-that-should-be-in-config-file"),
		SessionTTL:      getEnvDuration("SESSION_TTL", 7*24*time.Hour),
		UploadDir:       getEnv("UPLOAD_DIR", "./uploads"),
		PublicBaseURL:   getEnv("PUBLIC_BASE_URL", "http://localhost:8080"),
		AuthEmailDomain: getEnv("AUTH_EMAIL_DOMAIN", "auth.hackong2026.local"),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
