// Package config loads application configuration from command-line flags,
// environment variables, and an optional .env file.
package config

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Config holds the full application configuration.
type Config struct {
	App       AppConfig
	Logger    LoggerConfig
	Data      DataConfig
	Server    ServerConfig
	Auth      AuthConfig
	Uploads   UploadsConfig
	RateLimit RateLimitConfig
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging settings.
type LoggerConfig struct {
	Level string
}

// DataConfig holds storage locations.
type DataConfig struct {
	// BasePath is the root directory for the database, auth key, and media.
	BasePath string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Name          string
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	AdvertiseMDNS bool
}

// AuthConfig holds authentication settings.
type AuthConfig struct {
	// TokenKey is the PASETO v4 symmetric key (32 bytes). Set by
	// auth.LoadOrGenerateKey in main.
	TokenKey      []byte
	TokenDuration time.Duration
}

// UploadsConfig holds recipe image upload settings.
type UploadsConfig struct {
	// MediaPath is the directory for stored images. Defaults to
	// {data}/media.
	MediaPath string
	// MaxUploadSize caps multipart image uploads, in bytes.
	MaxUploadSize int64
}

// RateLimitConfig holds per-client request limits for the auth endpoints.
type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

// Load reads configuration with precedence: flags, then environment
// variables, then the .env file, then defaults.
func Load() (*Config, error) {
	env := flag.String("env", "", "Environment (development, staging, production)")
	logLevel := flag.String("log-level", "", "Log level (debug, info, warn, error)")
	dataPath := flag.String("data-path", "", "Base path for data storage")
	serverName := flag.String("server-name", "", "Name for the server")
	serverPort := flag.String("port", "", "Server port (default: 8080)")
	readTimeout := flag.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := flag.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := flag.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	advertiseMDNS := flag.String("advertise-mdns", "", "Advertise via mDNS/Zeroconf (default: true)")
	tokenDuration := flag.String("token-duration", "", "Access token lifetime (default: 720h)")
	mediaPath := flag.String("media-path", "", "Directory for uploaded images")
	maxUploadSize := flag.String("max-upload-size", "", "Max image upload size in bytes (default: 10485760)")
	envFile := flag.String("env-file", ".env", "Path to .env file")

	flag.Parse()

	// Missing .env files are fine.
	_ = loadEnvFile(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Data: DataConfig{
			BasePath: getValue(*dataPath, "DATA_PATH", ""),
		},
		Server: ServerConfig{
			Name:          getValue(*serverName, "SERVER_NAME", "Plateful Server"),
			Port:          getValue(*serverPort, "SERVER_PORT", "8080"),
			AdvertiseMDNS: getBoolValue(*advertiseMDNS, "ADVERTISE_MDNS", true),
		},
		Uploads: UploadsConfig{
			MediaPath:     getValue(*mediaPath, "MEDIA_PATH", ""),
			MaxUploadSize: int64(getIntValue(*maxUploadSize, "MAX_UPLOAD_SIZE", 10<<20)),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: float64(getIntValue("", "RATE_LIMIT_RPS", 5)),
			Burst:             getIntValue("", "RATE_LIMIT_BURST", 10),
		},
	}

	tokenDurationStr := getValue(*tokenDuration, "TOKEN_DURATION", "720h")
	d, err := time.ParseDuration(tokenDurationStr)
	if err != nil {
		return nil, fmt.Errorf("invalid token duration %q: %w", tokenDurationStr, err)
	}
	cfg.Auth.TokenDuration = d

	if cfg.Server.ReadTimeout, err = parseDurationValue(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDurationValue(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDurationValue(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if err := cfg.expandDataPath(); err != nil {
		return nil, fmt.Errorf("invalid data path: %w", err)
	}
	if err := cfg.expandMediaPath(); err != nil {
		return nil, fmt.Errorf("invalid media path: %w", err)
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

	if c.Data.BasePath == "" {
		return errors.New("data base path cannot be empty after expansion")
	}

	if c.Uploads.MaxUploadSize <= 0 {
		return fmt.Errorf("invalid max upload size: %d", c.Uploads.MaxUploadSize)
	}

	return nil
}

// DatabasePath returns the location of the SQLite database file.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Data.BasePath, "plateful.db")
}

// expandPath expands ~ and makes the path absolute. If path is empty the
// default is returned as-is.
func expandPath(path, defaultPath string) (string, error) {
	if path == "" {
		return defaultPath, nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func (c *Config) expandDataPath() error {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get home directory: %w", err)
	}
	defaultPath := filepath.Join(homeDir, "Plateful", "data")

	expanded, err := expandPath(c.Data.BasePath, defaultPath)
	if err != nil {
		return err
	}
	c.Data.BasePath = expanded
	return nil
}

func (c *Config) expandMediaPath() error {
	defaultPath := filepath.Join(c.Data.BasePath, "media")

	expanded, err := expandPath(c.Uploads.MediaPath, defaultPath)
	if err != nil {
		return err
	}
	c.Uploads.MediaPath = expanded
	return nil
}

// getValue returns the first non-empty value from flag, env var, or default.
func getValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolValue accepts "true", "1", "yes" (case-insensitive) as true.
func getBoolValue(flagValue, envKey string, defaultValue bool) bool {
	s := getValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes"
}

func getIntValue(flagValue, envKey string, defaultValue int) int {
	s := getValue(flagValue, envKey, "")
	if s == "" {
		return defaultValue
	}
	var result int
	if _, err := fmt.Sscanf(s, "%d", &result); err != nil {
		return defaultValue
	}
	return result
}

func parseDurationValue(flagValue, envKey, defaultValue string) (time.Duration, error) {
	s := getValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(strings.ReplaceAll(envKey, "_", " ")), s, err)
	}
	return d, nil
}

// loadEnvFile loads environment variables from a .env file.
// Format: KEY=value, one per line, # starts a comment.
func loadEnvFile(path string) error {
	file, err := os.Open(path) //#nosec G304 -- Config file path from user input is expected
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}
		key := strings.TrimSpace(parts[0])
		value := strings.Trim(strings.TrimSpace(parts[1]), `"'`)

		// Real environment variables win over .env entries.
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	return scanner.Err()
}
