package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the quota and rate-limit knobs.
const (
	DefaultMaxRequestsPerMonth = 20
	DefaultResetDay            = 1
	DefaultRateLimitWindow     = 15 * time.Minute
	DefaultRateLimitMax        = 100
	DefaultDetectorTimeout     = 10 * time.Second
)

// Clarifai holds the credentials and addressing for the face-detection
// service.
type Clarifai struct {
	BaseURL string
	PAT     string
	UserID  string
	AppID   string
}

// Config is built once at startup and injected into every component that
// needs it. Handlers never read the environment directly.
type Config struct {
	Port        string
	DatabaseURL string

	AllowedOrigins []string
	JWTSecret      string

	MaxRequestsPerMonth int
	ResetDay            int

	RateLimitWindow time.Duration
	RateLimitMax    int

	DetectorTimeout time.Duration
	Clarifai        Clarifai

	SeedDemoUsers bool
}

// Load reads .env (if present) and the process environment and validates
// the required settings. A missing ALLOWED_ORIGINS is fatal by contract.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("loading .env file: %w", err)
		}
	}

	cfg := &Config{
		Port:                envOr("PORT", "3000"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		MaxRequestsPerMonth: envInt("MAX_API_REQUESTS_PER_MONTH", DefaultMaxRequestsPerMonth),
		ResetDay:            envInt("RESET_DAY", DefaultResetDay),
		RateLimitWindow:     time.Duration(envInt("RATE_LIMIT_WINDOW_MINUTES", int(DefaultRateLimitWindow/time.Minute))) * time.Minute,
		RateLimitMax:        envInt("RATE_LIMIT_MAX", DefaultRateLimitMax),
		DetectorTimeout:     time.Duration(envInt("DETECTOR_TIMEOUT_SECONDS", int(DefaultDetectorTimeout/time.Second))) * time.Second,
		Clarifai: Clarifai{
			BaseURL: envOr("CLARIFAI_BASE_URL", "https://api.clarifai.com"),
			PAT:     os.Getenv("CLARIFAI_PAT"),
			UserID:  os.Getenv("CLARIFAI_USER_ID"),
			AppID:   os.Getenv("CLARIFAI_APP_ID"),
		},
		SeedDemoUsers: envBool("SEED_DEMO_USERS"),
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, o := range strings.Split(origins, ",") {
			if o = strings.TrimSpace(o); o != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, o)
			}
		}
	}

	var missing []string
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if len(cfg.AllowedOrigins) == 0 {
		missing = append(missing, "ALLOWED_ORIGINS")
	}
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.Clarifai.PAT == "" {
		missing = append(missing, "CLARIFAI_PAT")
	}
	if cfg.Clarifai.UserID == "" {
		missing = append(missing, "CLARIFAI_USER_ID")
	}
	if cfg.Clarifai.AppID == "" {
		missing = append(missing, "CLARIFAI_APP_ID")
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func envBool(key string) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	return err == nil && v
}
