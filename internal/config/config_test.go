package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_ACCESS_EXPIRY", "")
	t.Setenv("FOLLOW_UP_WINDOW", "")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTAccessExpiry)
	assert.Equal(t, 24*time.Hour, cfg.FollowUpWindow)
	assert.Equal(t, time.Hour, cfg.ReminderLeadTime)
	assert.Equal(t, "resend", cfg.EmailProvider)
	assert.Equal(t, "CRM System", cfg.FromName)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_PROVIDER", "SES")
	t.Setenv("JWT_ACCESS_EXPIRY", "30m")
	t.Setenv("MINIO_USE_SSL", "true")
	t.Setenv("APP_BASE_URL", "https://crm.example.com/")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "ses", cfg.EmailProvider)
	assert.Equal(t, 30*time.Minute, cfg.JWTAccessExpiry)
	assert.True(t, cfg.MinIOUseSSL)
	assert.Equal(t, "https://crm.example.com", cfg.AppBaseURL)
}

func TestLoad_BadDurationFallsBack(t *testing.T) {
	t.Setenv("REMINDER_LEAD_TIME", "soon")

	cfg := Load()

	assert.Equal(t, time.Hour, cfg.ReminderLeadTime)
}
