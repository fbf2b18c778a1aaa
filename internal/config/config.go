package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultJWTSecret is only meant for local development.
const DefaultJWTSecret = "mcq-quiz-dev-signing-key"

type Config struct {
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	RunMigrations bool

	// JWTSecret signs API tokens. It never leaves the backend.
	JWTSecret        []byte
	ClientID         string
	ClientSecretHash string // bcrypt

	CORSOrigins  []string
	MaxBodyBytes int64
}

func Load() Config {
	return Config{
		Port:             getEnv("PORT", "8080"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "5432"),
		DBUser:           getEnv("DB_USER", "mcq_user"),
		DBPassword:       getEnv("DB_PASSWORD", "mcq_password"),
		DBName:           getEnv("DB_NAME", "mcq_quiz"),
		DBSSLMode:        getEnv("DB_SSLMODE", "disable"),
		RunMigrations:    getBool("RUN_MIGRATIONS", true),
		JWTSecret:        []byte(getEnv("JWT_SECRET", DefaultJWTSecret)),
		ClientID:         getEnv("API_CLIENT_ID", "quiz-frontend"),
		ClientSecretHash: os.Getenv("API_CLIENT_SECRET_HASH"),
		CORSOrigins:      getCSV("CORS_ORIGINS", "*"),
		MaxBodyBytes:     getInt64("MAX_BODY_BYTES", 1<<20),
	}
}

// UsingDefaultJWTSecret reports whether JWT_SECRET was left unset.
func (c Config) UsingDefaultJWTSecret() bool {
	return string(c.JWTSecret) == DefaultJWTSecret
}

// DSN returns the lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode,
	)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "yes":
		return true
	case "0", "false", "FALSE", "no":
		return false
	default:
		return fallback
	}
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getCSV(key, fallback string) []string {
	parts := strings.Split(getEnv(key, fallback), ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
