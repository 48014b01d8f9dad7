package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/gommon/random"
)

const generatedSecretLength = 32

// Config holds every runtime setting read from the environment.
type Config struct {
	Port        string
	DatabaseURL string
	LogLevel    string
	AutoMigrate bool
	JobsEnabled bool
	JobInterval time.Duration

	Session SessionConfig
	Redis   RedisConfig
	Minio   MinioConfig
	Admin   AdminConfig
}

type SessionConfig struct {
	Secret         string
	TTL            time.Duration
	CookieSecure   bool
	LoginRateLimit int
	// Generated is set when no secret was configured and a random one was used.
	Generated bool
}

// RedisConfig selects the session store. An empty Addr keeps sessions in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// MinioConfig configures property image storage. An empty Endpoint disables it.
type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	UseSSL    bool
	Bucket    string
}

type AdminConfig struct {
	Username string
	Password string
	Email    string
}

func (m MinioConfig) Enabled() bool {
	return m.Endpoint != ""
}

// Load reads envFile if it exists, then the process environment. Variables
// already set in the environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	var errs []string
	cfg := &Config{
		Port:        getString("PORT", "5000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		LogLevel:    getString("LOG_LEVEL", "info"),
		AutoMigrate: getBool("AUTO_MIGRATE", true, &errs),
		JobsEnabled: getBool("JOBS_ENABLED", true, &errs),
		JobInterval: getDuration("JOB_INTERVAL", time.Hour, &errs),
		Session: SessionConfig{
			Secret:         os.Getenv("SESSION_SECRET"),
			TTL:            getDuration("SESSION_TTL", 24*time.Hour, &errs),
			CookieSecure:   getBool("COOKIE_SECURE", false, &errs),
			LoginRateLimit: getInt("LOGIN_RATE_LIMIT", 10, &errs),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       getInt("REDIS_DB", 0, &errs),
		},
		Minio: MinioConfig{
			Endpoint:  os.Getenv("MINIO_ENDPOINT"),
			AccessKey: getString("MINIO_ACCESS_KEY", "minioadmin"),
			SecretKey: getString("MINIO_SECRET_KEY", "minioadmin"),
			UseSSL:    getBool("MINIO_USE_SSL", false, &errs),
			Bucket:    getString("MINIO_BUCKET", "property-images"),
		},
		Admin: AdminConfig{
			Username: getString("ADMIN_USERNAME", "admin"),
			Password: getString("ADMIN_PASSWORD", "admin"),
			Email:    getString("ADMIN_EMAIL", "admin@localhost"),
		},
	}

	if cfg.DatabaseURL == "" {
		errs = append(errs, "DATABASE_URL is required")
	}
	if cfg.Session.TTL <= 0 {
		errs = append(errs, "SESSION_TTL must be positive")
	}
	if cfg.JobInterval <= 0 {
		errs = append(errs, "JOB_INTERVAL must be positive")
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}

	if cfg.Session.Secret == "" {
		cfg.Session.Secret = random.String(generatedSecretLength)
		cfg.Session.Generated = true
	}

	return cfg, nil
}

func getString(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool, errs *[]string) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be a boolean", key))
		return fallback
	}
	return b
}

func getInt(key string, fallback int, errs *[]string) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be an integer", key))
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration, errs *[]string) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		*errs = append(*errs, fmt.Sprintf("%s must be a duration like 24h", key))
		return fallback
	}
	return d
}
