package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	JWTSecret  string

	SMTPHost string
	SMTPPort int
	SMTPUser string
	SMTPPass string
	MailFrom string
	// ConfirmURL is the public base URL the confirmation link points at.
	ConfirmURL string

	// MaterialFilesPath is the directory material images are stored in.
	MaterialFilesPath string

	SwaggerHost string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		MySQLDSN:   getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/consigne?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:  getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:    getEnvInt("REDIS_DB", 0),
		RedisPass:  os.Getenv("REDIS_PASSWORD"),
		JWTSecret:  getEnv("JWT_SECRET", "change-me"),

		SMTPHost:   getEnv("MAILER_HOST", "localhost"),
		SMTPPort:   getEnvInt("MAILER_PORT", 587),
		SMTPUser:   os.Getenv("MAILER_USER"),
		SMTPPass:   os.Getenv("MAILER_PASSWORD"),
		MailFrom:   getEnv("MAILER_FROM", "no-reply@consigne.local"),
		ConfirmURL: getEnv("CONFIRM_URL", "http://localhost:8080/api/auth/confirm"),

		MaterialFilesPath: getEnv("PATH_FILES_MATERIAL", "./files/materials"),

		SwaggerHost: os.Getenv("SWAGGER_HOST"),
	}
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
