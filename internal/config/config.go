package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort       string
	DatabaseURL      string
	RunMigrations    bool
	AMQPURL          string
	MailHost         string
	MailPort         int
	MailUser         string
	MailPass         string
	MailFrom         string
	AdminEmail       string
	UPIQRBaseURL     string
	AllowedOrigins   []string
	ContactRateLimit int
}

// Load lê o .env (se existir) e depois o ambiente. DATABASE_URL e AMQP_URL
// vazios ligam a store em memória e desligam os eventos.
func Load() *Config {
	godotenv.Load()

	return &Config{
		ServerPort:       getEnv("SERVER_PORT", "8080"),
		DatabaseURL:      getEnv("DATABASE_URL", ""),
		RunMigrations:    getEnvAsBool("RUN_MIGRATIONS", true),
		AMQPURL:          getEnv("AMQP_URL", ""),
		MailHost:         getEnv("MAIL_HOST", ""),
		MailPort:         getEnvAsInt("MAIL_PORT", 587),
		MailUser:         getEnv("MAIL_USER", ""),
		MailPass:         getEnv("MAIL_PASS", ""),
		MailFrom:         getEnv("MAIL_FROM", "no-reply@machinecare.in"),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),
		UPIQRBaseURL:     getEnv("UPI_QR_BASE_URL", ""),
		AllowedOrigins:   getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"*"}),
		ContactRateLimit: getEnvAsInt("CONTACT_RATE_LIMIT", 10),
	}
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
