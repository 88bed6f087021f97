package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment    string
	Port           string
	AllowedOrigins []string

	Form  FormConfig
	Email EmailConfig
}

// FormConfig describes the downstream form-collection service.
type FormConfig struct {
	URL       string
	FieldID   string
	UserAgent string
	Timeout   time.Duration
}

// EmailConfig configures host alerts for undelivered RSVPs.
type EmailConfig struct {
	AlertTo            string
	Provider           string
	FromAddress        string
	FromName           string
	AWSRegion          string
	AWSAccessKeyID     string
	AWSSecretAccessKey string
	InsecureSkipVerify bool
	BreakerMaxFailures uint32
	BreakerCooldown    time.Duration
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production .env might not exist and we rely on system environment variables
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:    env,
		Port:           getEnv("PORT", "8080"),
		AllowedOrigins: splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Form: FormConfig{
			URL:       os.Getenv("FORM_URL"),
			FieldID:   os.Getenv("FORM_FIELD_ID"),
			UserAgent: os.Getenv("FORM_USER_AGENT"),
		},
		Email: EmailConfig{
			AlertTo:            os.Getenv("ALERT_EMAIL_TO"),
			Provider:           getEnv("EMAIL_PROVIDER", "noop"),
			FromAddress:        os.Getenv("EMAIL_FROM_ADDRESS"),
			FromName:           os.Getenv("EMAIL_FROM_NAME"),
			AWSRegion:          os.Getenv("AWS_REGION"),
			AWSAccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			AWSSecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	var err error
	if cfg.Form.Timeout, err = durationEnv("FORM_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.Email.BreakerCooldown, err = durationEnv("ALERT_BREAKER_COOLDOWN", 5*time.Minute); err != nil {
		return nil, err
	}
	maxFailures, err := strconv.ParseUint(getEnv("ALERT_BREAKER_MAX_FAILURES", "3"), 10, 32)
	if err != nil {
		return nil, fmt.Errorf("ALERT_BREAKER_MAX_FAILURES: %w", err)
	}
	cfg.Email.BreakerMaxFailures = uint32(maxFailures)
	if s := os.Getenv("AWS_SES_INSECURE_SKIP_VERIFY"); s != "" {
		if cfg.Email.InsecureSkipVerify, err = strconv.ParseBool(s); err != nil {
			return nil, fmt.Errorf("AWS_SES_INSECURE_SKIP_VERIFY: %w", err)
		}
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s: must not be negative", key)
	}
	return d, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
