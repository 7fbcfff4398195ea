// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Config holds the application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Database  DatabaseConfig
	Server    ServerConfig
	RateLimit RateLimitConfig
	Signer    SignerConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level          string
	File           string // Optional rotating JSON log file
	FileMaxSizeMB  int
	FileMaxBackups int
	FileMaxAgeDays int
}

// DatabaseConfig holds catalog datastore configuration.
type DatabaseConfig struct {
	Driver       string // sqlite or postgres
	URL          string // SQLite file path or PostgreSQL connection URL
	MaxOpenConns int    // 0 uses the driver default
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port               string        // Server port (default: 8080)
	BaseURL            string        // Public URL used in card links (default: http://localhost:8080)
	ReadTimeout        time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout       time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout        time.Duration // HTTP idle timeout (default: 60s)
	CORSAllowedOrigins []string      // Browser origins allowed to call the API (default: *)
	TrustProxyHeaders  bool          // Take client IPs from X-Forwarded-For/X-Real-IP (default: false)
}

// RateLimitConfig holds per-client rate limits for the POST endpoints.
type RateLimitConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// SignerConfig selects the signer variant handed to the card renderer.
type SignerConfig struct {
	Kind string // none or farcaster
}

// LoadConfig loads configuration from the process arguments and environment.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("framearchive", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")
	logFile := fs.String("log-file", "", "Path to a rotating JSON log file")

	// Database flags
	dbDriver := fs.String("db-driver", "", "Database driver (sqlite, postgres)")
	databaseURL := fs.String("database-url", "", "SQLite path or PostgreSQL URL")
	dbMaxOpen := fs.String("db-max-open-conns", "", "Maximum open database connections")

	// Server flags
	port := fs.String("port", "", "Server port (default: 8080)")
	baseURL := fs.String("base-url", "", "Public base URL")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-allowed-origins", "", "Comma-separated allowed CORS origins")
	trustProxy := fs.String("trust-proxy-headers", "", "Trust X-Forwarded-For/X-Real-IP for client IPs (default: false)")

	// Rate limit flags
	rateLimitEnabled := fs.String("rate-limit-enabled", "", "Rate limit POST endpoints (default: true)")
	rateLimitRPS := fs.String("rate-limit-rps", "", "Sustained requests per second per client")
	rateLimitBurst := fs.String("rate-limit-burst", "", "Burst size per client")

	signerKind := fs.String("signer", "", "Signer variant (none, farcaster)")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Load .env file if it exists (silently ignore if not found).
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level:          getConfigValue(*logLevel, "LOG_LEVEL", "info"),
			File:           getConfigValue(*logFile, "LOG_FILE", ""),
			FileMaxSizeMB:  getIntConfigValue("", "LOG_FILE_MAX_SIZE_MB", 100),
			FileMaxBackups: getIntConfigValue("", "LOG_FILE_MAX_BACKUPS", 5),
			FileMaxAgeDays: getIntConfigValue("", "LOG_FILE_MAX_AGE_DAYS", 30),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(getConfigValue(*dbDriver, "DB_DRIVER", "sqlite")),
			URL:          getConfigValue(*databaseURL, "DATABASE_URL", ""),
			MaxOpenConns: getIntConfigValue(*dbMaxOpen, "DB_MAX_OPEN_CONNS", 0),
		},
		Server: ServerConfig{
			Port:               getConfigValue(*port, "PORT", "8080"),
			BaseURL:            strings.TrimRight(getConfigValue(*baseURL, "BASE_URL", "http://localhost:8080"), "/"),
			CORSAllowedOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ALLOWED_ORIGINS", "*")),
			TrustProxyHeaders:  getBoolConfigValue(*trustProxy, "TRUST_PROXY_HEADERS", false),
		},
		RateLimit: RateLimitConfig{
			Enabled: getBoolConfigValue(*rateLimitEnabled, "RATE_LIMIT_ENABLED", true),
			Burst:   getIntConfigValue(*rateLimitBurst, "RATE_LIMIT_BURST", 10),
		},
		Signer: SignerConfig{
			Kind: strings.ToLower(getConfigValue(*signerKind, "SIGNER", "none")),
		},
	}

	rpsStr := getConfigValue(*rateLimitRPS, "RATE_LIMIT_RPS", "5")
	rps, err := strconv.ParseFloat(rpsStr, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid rate limit rps %q: %w", rpsStr, err)
	}
	cfg.RateLimit.RPS = rps

	// Parse server timeouts.
	if cfg.Server.ReadTimeout, err = getDurationConfigValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = getDurationConfigValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = getDurationConfigValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandDatabaseURL(); err != nil {
		return nil, fmt.Errorf("invalid database url: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("invalid database driver: %s (must be sqlite or postgres)", c.Database.Driver)
	}
	if c.Database.URL == "" {
		return errors.New("DATABASE_URL cannot be empty")
	}

	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base url: %q (must be an absolute http or https URL)", c.Server.BaseURL)
	}

	if c.RateLimit.Enabled && (c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0) {
		return errors.New("rate limit rps and burst must be positive when rate limiting is enabled")
	}

	switch c.Signer.Kind {
	case "none", "farcaster":
	default:
		return fmt.Errorf("invalid signer: %s (must be none or farcaster)", c.Signer.Kind)
	}

	return nil
}

// IsProduction reports whether the server runs in production.
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// expandDatabaseURL defaults and expands the SQLite path. PostgreSQL URLs are left as given.
func (c *Config) expandDatabaseURL() error {
	if c.Database.Driver != "sqlite" {
		return nil
	}
	expanded, err := expandPath(c.Database.URL, filepath.Join("data", "framearchive.db"))
	if err != nil {
		return err
	}
	c.Database.URL = expanded
	return nil
}

// expandPath expands ~ and makes the path absolute.
// If path is empty, defaultPath is expanded instead.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		path = defaultPath
	}
	if path == "" {
		return "", nil
	}

	// Expand tilde.
	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	// Make absolute if needed.
	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

// splitList splits a comma-separated value, dropping blanks.
func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getConfigValue returns the first non-empty value from flag, env var, or default.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	// Priority 1: Command-line flag.
	if flagValue != "" {
		return flagValue
	}

	// Priority 2: Environment variable.
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}

	// Priority 3: Default value.
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

// getIntConfigValue returns an int from flag, env var, or default.
func getIntConfigValue(flagValue, envKey string, defaultValue int) int {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	result, err := strconv.Atoi(strValue)
	if err != nil {
		return defaultValue
	}
	return result
}

// getDurationConfigValue parses a duration from flag, env var, or default.
func getDurationConfigValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	strValue := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(strValue)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), strValue, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value (one per line, # for comments).
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())

		// Skip empty lines and comments.
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return fmt.Errorf("invalid format at line %d: %s", lineNum, line)
		}

		key = strings.TrimSpace(key)
		value = strings.Trim(strings.TrimSpace(value), `"'`)

		// Only set if not already set (env vars take precedence over .env file).
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("failed to set env var %s: %w", key, err)
			}
		}
	}

	return scanner.Err()
}
