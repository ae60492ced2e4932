package config

import (
	"encoding/base64"
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/quatton/metashare/pkg/db"
	"github.com/quatton/metashare/pkg/kv"
)

type EnvConfig struct {
	Port            string `envconfig:"PORT" default:"8000"`
	BaseURL         string `envconfig:"BASE_URL" required:"true"`
	AuthSecret      string `envconfig:"AUTH_SECRET" required:"true"`
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	Verbose         bool   `envconfig:"VERBOSE" default:"false"`
	AccessTokenTTL  int    `envconfig:"ACCESS_TOKEN_TTL" default:"3600"`
	RefreshTokenTTL int    `envconfig:"REFRESH_TOKEN_TTL" default:"2592000"` // 30 days

	DB    db.Config      `envconfig:"DB"`
	Redis kv.RedisConfig `envconfig:"REDIS"`

	GitHubAppID             int64  `envconfig:"GITHUB_APP_ID"`
	GitHubAppInstallationID int64  `envconfig:"GITHUB_APP_INSTALLATION_ID"`
	GitHubAppPrivateKey     string `envconfig:"GITHUB_APP_PRIVATE_KEY"`
	GitHubEnterpriseURL     string `envconfig:"GITHUB_ENTERPRISE_URL"`

	SalesforceClientID     string `envconfig:"SF_CLIENT_ID"`
	SalesforceClientSecret string `envconfig:"SF_CLIENT_SECRET"`
	SalesforceLoginURL     string `envconfig:"SF_LOGIN_URL" default:"https://login.salesforce.com"`
	SalesforceAPIVersion   string `envconfig:"SF_API_VERSION" default:"57.0"`

	// RateLimit is requests per second per caller; 0 disables limiting.
	RateLimit      float64 `envconfig:"RATE_LIMIT" default:"20"`
	RateLimitBurst int     `envconfig:"RATE_LIMIT_BURST" default:"40"`

	WorkerConcurrency int           `envconfig:"WORKER_CONCURRENCY" default:"4"`
	WorkerPollTimeout time.Duration `envconfig:"WORKER_POLL_TIMEOUT" default:"5s"`
	WorkerMaxAttempts int           `envconfig:"WORKER_MAX_ATTEMPTS" default:"3"`
}

func defaults() EnvConfig {
	return EnvConfig{
		DB: db.Config{
			Host:     "localhost",
			Port:     5432,
			User:     "metashare",
			Password: "password",
			Database: "metashare",
			SSLMode:  "disable",
		},
		Redis: kv.RedisConfig{Addr: "localhost:6379"},
	}
}

// IsDev reports whether ENVIRONMENT names a development deployment.
func IsDev() bool {
	env := strings.ToLower(os.Getenv("ENVIRONMENT"))
	return env == "development" || env == "dev" || env == ""
}

// LoadDotEnv reads .env in development only.
func LoadDotEnv() {
	if !IsDev() {
		return
	}
	if err := godotenv.Load(); err != nil {
		log.Println("ℹ No .env file found")
	} else {
		log.Println("✓ Loaded .env file")
	}
}

// Load reads the environment without validation.
func Load() (*EnvConfig, error) {
	LoadDotEnv()

	cfg := defaults()
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}
	return &cfg, nil
}

// ValidateEnv loads the configuration and reports every problem at once.
func ValidateEnv() (*EnvConfig, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *EnvConfig) Validate() error {
	var errors []string

	if len(c.AuthSecret) < 32 {
		errors = append(errors, "  ❌ AUTH_SECRET must be at least 32 characters")
	}

	if _, err := url.ParseRequestURI(c.BaseURL); err != nil {
		errors = append(errors, "  ❌ BASE_URL must be a valid URL")
	}

	if c.GitHubAppID != 0 && (c.GitHubAppPrivateKey == "" || c.GitHubAppInstallationID == 0) {
		errors = append(errors, "  ❌ GITHUB_APP_PRIVATE_KEY and GITHUB_APP_INSTALLATION_ID are required when GITHUB_APP_ID is set")
	}

	if (c.SalesforceClientID == "") != (c.SalesforceClientSecret == "") {
		errors = append(errors, "  ❌ Both SF_CLIENT_ID and SF_CLIENT_SECRET must be set together")
	}

	if _, err := url.ParseRequestURI(c.SalesforceLoginURL); err != nil {
		errors = append(errors, "  ❌ SF_LOGIN_URL must be a valid URL")
	}

	if c.AccessTokenTTL <= 0 || c.RefreshTokenTTL <= 0 {
		errors = append(errors, "  ❌ ACCESS_TOKEN_TTL and REFRESH_TOKEN_TTL must be positive")
	}

	if c.RateLimit < 0 {
		errors = append(errors, "  ❌ RATE_LIMIT must not be negative")
	}

	if len(errors) > 0 {
		return fmt.Errorf("environment validation failed:\n%s", strings.Join(errors, "\n"))
	}
	return nil
}

// GitHubAppKey returns the PEM app key, accepting either raw PEM or base64.
func (c *EnvConfig) GitHubAppKey() []byte {
	if decoded, err := base64.StdEncoding.DecodeString(c.GitHubAppPrivateKey); err == nil && len(decoded) > 0 {
		return decoded
	}
	return []byte(c.GitHubAppPrivateKey)
}

func (c *EnvConfig) AccessTTL() time.Duration {
	return time.Duration(c.AccessTokenTTL) * time.Second
}

func (c *EnvConfig) RefreshTTL() time.Duration {
	return time.Duration(c.RefreshTokenTTL) * time.Second
}

func MaskSecret(secret string) string {
	if secret == "" {
		return "<not set>"
	}
	if len(secret) <= 8 {
		return "***"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}

func (c *EnvConfig) Print(fmtr func(string, ...interface{})) {
	fmtr("📋 Configuration:\n")
	fmtr("  Environment: %s\n", c.Environment)
	fmtr("  Port: %s\n", c.Port)
	fmtr("  Base URL: %s\n", c.BaseURL)
	fmtr("  Auth Secret: %s\n", MaskSecret(c.AuthSecret))
	fmtr("  Database: %s@%s:%d/%s (sslmode=%s)\n", c.DB.User, c.DB.Host, c.DB.Port, c.DB.Database, c.DB.SSLMode)
	fmtr("  Redis: %s (db %d, password %s)\n", c.Redis.Addr, c.Redis.DB, MaskSecret(c.Redis.Password))
	fmtr("  Access TTL: %ds, Refresh TTL: %ds\n", c.AccessTokenTTL, c.RefreshTokenTTL)

	if c.GitHubAppID != 0 {
		fmtr("  GitHub App: ✓ Enabled (ID: %d, installation: %d)\n", c.GitHubAppID, c.GitHubAppInstallationID)
	} else {
		fmtr("  GitHub App: ✗ Disabled (repositories resolved with user tokens)\n")
	}

	if c.SalesforceClientID != "" {
		fmtr("  Salesforce: ✓ %s (API v%s)\n", c.SalesforceLoginURL, c.SalesforceAPIVersion)
		fmtr("    Client ID: %s\n", MaskSecret(c.SalesforceClientID))
		fmtr("    Client Secret: %s\n", MaskSecret(c.SalesforceClientSecret))
	} else {
		fmtr("  Salesforce: ✗ Not configured\n")
	}

	if c.RateLimit > 0 {
		fmtr("  Rate limit: %.1f req/s (burst %d)\n", c.RateLimit, c.RateLimitBurst)
	} else {
		fmtr("  Rate limit: off\n")
	}
}
