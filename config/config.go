package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	// AllowForcedOutcome enables the simulate_outcome payment payload
	// field. Enabled by default; disable in environments where forced
	// gateway outcomes must not be honoured.
	AllowForcedOutcome bool
}

// AppConfig is the process-wide configuration loaded at startup
var AppConfig *Config

// LoadConfig loads configuration from environment variables. A missing
// .env file is not an error; real deployments set the environment
// directly.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		DBHost:             os.Getenv("DB_HOST"),
		DBPort:             os.Getenv("DB_PORT"),
		DBUser:             os.Getenv("DB_USER"),
		DBPassword:         os.Getenv("DB_PASSWORD"),
		DBName:             os.Getenv("DB_NAME"),
		JWTSecret:          os.Getenv("JWT_SECRET"),
		Port:               os.Getenv("PORT"),
		Env:                os.Getenv("ENV"),
		AllowForcedOutcome: envBool("PAYMENT_SIMULATE_OUTCOME", true),
	}

	AppConfig = config
	return config, nil
}

// ForcedOutcomeAllowed reports whether gateways should honour the
// simulate_outcome field. Defaults to true when config has not been
// loaded, matching the startup default.
func ForcedOutcomeAllowed() bool {
	if AppConfig == nil {
		return true
	}
	return AppConfig.AllowForcedOutcome
}

func envBool(key string, fallback bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}
