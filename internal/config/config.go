package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName   string
	AppEnv    string
	Port      string
	ClientURL string // SPA origin: CORS allow-list and base for email links

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret                string
	JWTExpiry                time.Duration
	CookieMaxAge             time.Duration
	CookieSecure             bool // SameSite=None + Secure for cross-site clients
	TokenPasswordResetExpiry time.Duration
	TokenOTPExpiry           time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Observability (optional)
	SentryDSN string

	// Storage
	StorageDriver  string // "s3" or "local"
	UploadDir      string
	UploadMaxBytes int64
	S3Region       string
	S3Bucket       string
	S3AccessKey    string
	S3SecretKey    string
	S3Endpoint     string // Optional: for S3-compatible services (MinIO, R2, etc.)
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	appEnv := envRequired("APP_ENV") // 'development' or 'production'
	defaultStorage := "s3"
	if appEnv == "development" {
		defaultStorage = "local"
	}

	cfg := &Config{
		AppName:   envString("APP_NAME", "SnapNest"),
		AppEnv:    appEnv,
		Port:      envString("PORT", "8090"),
		ClientURL: envRequired("CLIENT_URL"),

		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/snapnest.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		JWTSecret:                envRequired("JWT_SECRET"),
		JWTExpiry:                envDuration("JWT_EXPIRY", 24*time.Hour),
		CookieMaxAge:             envDuration("COOKIE_MAX_AGE", 15*24*time.Hour),
		CookieSecure:             envBool("COOKIE_SECURE", appEnv == "production"),
		TokenPasswordResetExpiry: envDuration("TOKEN_PASSWORD_RESET_EXPIRY", 5*time.Minute),
		TokenOTPExpiry:           envDuration("TOKEN_OTP_EXPIRY", 5*time.Minute),

		EmailFrom:    envString("EMAIL_FROM", "noreply@snapnest.app"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		SentryDSN: envString("SENTRY_DSN", ""),

		StorageDriver:  envString("STORAGE_DRIVER", defaultStorage),
		UploadDir:      envString("UPLOAD_DIR", "./data/uploads"),
		UploadMaxBytes: envInt64("UPLOAD_MAX_BYTES", 5<<20),
		S3Region:       envString("S3_REGION", ""),
		S3Bucket:       envString("S3_BUCKET", ""),
		S3AccessKey:    envString("S3_ACCESS_KEY", ""),
		S3SecretKey:    envString("S3_SECRET_KEY", ""),
		S3Endpoint:     envString("S3_ENDPOINT", ""),
	}

	if cfg.IsProduction() {
		validateProduction(cfg)
	}
	if cfg.StorageDriver == "s3" {
		validateS3(cfg)
	}

	return cfg
}

// validateProduction ensures the mail transport is configured outside development.
func validateProduction(cfg *Config) {
	if cfg.ResendAPIKey == "" {
		slog.Error("production deployment requires RESEND_API_KEY",
			"hint", "set APP_ENV=development for local testing with email log mode")
		os.Exit(1)
	}
}

func validateS3(cfg *Config) {
	if cfg.S3Region == "" || cfg.S3Bucket == "" {
		slog.Error("s3 storage requires S3_REGION and S3_BUCKET",
			"hint", "set STORAGE_DRIVER=local to keep uploads on disk")
		os.Exit(1)
	}
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envBool(key string, def bool) bool {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("config invalid bool, using default", "key", key, "value", v, "default", def)
		return def
	}
	return b
}

func envInt64(key string, def int64) int64 {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		slog.Warn("config invalid integer, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

func envRequired(key string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	slog.Error("config required env var missing", "key", key)
	os.Exit(1)
	return ""
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}
