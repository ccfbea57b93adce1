package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingJWTSecret is returned by Validate when no signing key is configured.
var ErrMissingJWTSecret = errors.New("JWT_SECRET is required")

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Env        string
	ServerPort string
	LogLevel   string

	DBDriver    string
	DatabaseURL string
	ResetDB     bool

	JWTSecret  string
	BcryptCost int

	RedisAddr string
	RedisDB   int
	RedisPass string

	CORSOrigin string

	AdminEmail    string
	AdminPassword string

	APIRateLimit float64
	APIRateBurst int

	ContactRateLimit  int
	ContactRateWindow time.Duration

	InternalAPIURL string
	EdgePort       string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults. A .env file in the
// working directory is read first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:        getEnv("APP_ENV", "development"),
		ServerPort: getEnv("SERVER_PORT", "8080"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		DBDriver:    strings.ToLower(getEnv("DB_DRIVER", "mysql")),
		DatabaseURL: getEnv("DATABASE_URL", "user:password@tcp(localhost:3306)/kitchen?charset=utf8mb4&parseTime=True&loc=UTC"),
		ResetDB:     getEnvBool("RESET_DB", false),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		BcryptCost: getEnvInt("BCRYPT_COST", 12),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		RedisDB:   getEnvInt("REDIS_DB", 0),
		RedisPass: os.Getenv("REDIS_PASSWORD"),

		CORSOrigin: getEnv("CORS_ORIGIN", "http://localhost:3000"),

		AdminEmail:    os.Getenv("ADMIN_EMAIL"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		APIRateLimit: getEnvFloat("API_RATE_LIMIT", 10),
		APIRateBurst: getEnvInt("API_RATE_BURST", 30),

		ContactRateLimit:  getEnvInt("CONTACT_RATE_LIMIT", 3),
		ContactRateWindow: getEnvDuration("CONTACT_RATE_WINDOW", 15*time.Minute),

		InternalAPIURL: getEnv("INTERNAL_API_URL", "http://localhost:8080/api"),
		EdgePort:       getEnv("EDGE_PORT", "3000"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Validate checks settings the service cannot start without.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.JWTSecret) == "" {
		return ErrMissingJWTSecret
	}
	return nil
}

// HasBootstrapAdmin reports whether a one-time admin seed is configured.
func (c *Config) HasBootstrapAdmin() bool {
	return c.AdminEmail != "" && c.AdminPassword != ""
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			return parsed
		}
	}
	return def
}
