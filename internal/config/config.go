package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port        string
	Environment string

	LogLevel  string
	LogFormat string

	DatabaseURL string

	RedisURL string

	JWTSecret        string
	JWTAccessExpiry  time.Duration
	JWTRefreshExpiry time.Duration

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOUseSSL    bool
	ExportURLTTL   time.Duration

	CORSOrigins string

	EmailProvider string
	ResendAPIKey  string
	AWSRegion     string
	FromEmail     string
	FromName      string
	AppBaseURL    string

	FollowUpWindow   time.Duration
	ReminderLeadTime time.Duration
}

var defaults = map[string]any{
	"PORT":        "8080",
	"ENVIRONMENT": "development",

	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "console",

	"DATABASE_URL": "",

	"REDIS_URL": "redis://localhost:6379",

	"JWT_SECRET":         "",
	"JWT_ACCESS_EXPIRY":  "1h",
	"JWT_REFRESH_EXPIRY": "168h",

	"MINIO_ENDPOINT":   "localhost:9000",
	"MINIO_ACCESS_KEY": "minioadmin",
	"MINIO_SECRET_KEY": "minioadmin",
	"MINIO_BUCKET":     "crm-exports",
	"MINIO_USE_SSL":    false,
	"EXPORT_URL_TTL":   "15m",

	"CORS_ORIGINS": "http://localhost:3000",

	"EMAIL_PROVIDER": "resend",
	"RESEND_API_KEY": "",
	"AWS_REGION":     "us-east-1",
	"FROM_EMAIL":     "",
	"FROM_NAME":      "CRM System",
	"APP_BASE_URL":   "http://localhost:3000",

	"FOLLOW_UP_WINDOW":   "24h",
	"REMINDER_LEAD_TIME": "1h",
}

// Load reads configuration from the environment. Unset or unparsable values
// fall back to the defaults above.
func Load() *Config {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	return fromViper(v)
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Port:        v.GetString("PORT"),
		Environment: v.GetString("ENVIRONMENT"),

		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),

		DatabaseURL: v.GetString("DATABASE_URL"),

		RedisURL: v.GetString("REDIS_URL"),

		JWTSecret:        v.GetString("JWT_SECRET"),
		JWTAccessExpiry:  getDuration(v, "JWT_ACCESS_EXPIRY"),
		JWTRefreshExpiry: getDuration(v, "JWT_REFRESH_EXPIRY"),

		MinIOEndpoint:  v.GetString("MINIO_ENDPOINT"),
		MinIOAccessKey: v.GetString("MINIO_ACCESS_KEY"),
		MinIOSecretKey: v.GetString("MINIO_SECRET_KEY"),
		MinIOBucket:    v.GetString("MINIO_BUCKET"),
		MinIOUseSSL:    v.GetBool("MINIO_USE_SSL"),
		ExportURLTTL:   getDuration(v, "EXPORT_URL_TTL"),

		CORSOrigins: v.GetString("CORS_ORIGINS"),

		EmailProvider: strings.ToLower(v.GetString("EMAIL_PROVIDER")),
		ResendAPIKey:  v.GetString("RESEND_API_KEY"),
		AWSRegion:     v.GetString("AWS_REGION"),
		FromEmail:     v.GetString("FROM_EMAIL"),
		FromName:      v.GetString("FROM_NAME"),
		AppBaseURL:    strings.TrimRight(v.GetString("APP_BASE_URL"), "/"),

		FollowUpWindow:   getDuration(v, "FOLLOW_UP_WINDOW"),
		ReminderLeadTime: getDuration(v, "REMINDER_LEAD_TIME"),
	}
}

func getDuration(v *viper.Viper, key string) time.Duration {
	if d, err := time.ParseDuration(v.GetString(key)); err == nil && d > 0 {
		return d
	}
	d, _ := time.ParseDuration(defaults[key].(string))
	return d
}
