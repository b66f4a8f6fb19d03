package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"SERVER_PORT", "DATABASE_URL", "RUN_MIGRATIONS", "AMQP_URL",
		"MAIL_HOST", "MAIL_PORT", "MAIL_USER", "MAIL_PASS", "MAIL_FROM",
		"ADMIN_EMAIL", "UPI_QR_BASE_URL", "CORS_ALLOWED_ORIGINS", "CONTACT_RATE_LIMIT",
	} {
		t.Setenv(k, "")
	}
}

// TestLoadDefaults - sem ambiente roda com store em memória e sem email
func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Empty(t, cfg.DatabaseURL)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, 587, cfg.MailPort)
	assert.Equal(t, "no-reply@machinecare.in", cfg.MailFrom)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Equal(t, 10, cfg.ContactRateLimit)
	assert.False(t, cfg.MailEnabled())
}

// TestLoadFromEnv - valores do ambiente sobrescrevem os padrões
func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("DATABASE_URL", "postgres://localhost/leads")
	t.Setenv("RUN_MIGRATIONS", "false")
	t.Setenv("MAIL_HOST", "smtp.example.com")
	t.Setenv("MAIL_PORT", "2525")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://machinecare.in, https://admin.machinecare.in ,")
	t.Setenv("CONTACT_RATE_LIMIT", "3")

	cfg := Load()

	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, "postgres://localhost/leads", cfg.DatabaseURL)
	assert.False(t, cfg.RunMigrations)
	assert.Equal(t, 2525, cfg.MailPort)
	assert.Equal(t, []string{"https://machinecare.in", "https://admin.machinecare.in"}, cfg.AllowedOrigins)
	assert.Equal(t, 3, cfg.ContactRateLimit)
	assert.True(t, cfg.MailEnabled())
}

// TestLoadInvalidValues - número ou booleano inválido cai no padrão
func TestLoadInvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("MAIL_PORT", "smtp")
	t.Setenv("RUN_MIGRATIONS", "talvez")
	t.Setenv("CORS_ALLOWED_ORIGINS", " , ")

	cfg := Load()

	assert.Equal(t, 587, cfg.MailPort)
	assert.True(t, cfg.RunMigrations)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
}
