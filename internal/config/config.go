// Package config resolves the service configuration from environment
// variables, with an optional config.yaml and sane defaults.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the full configuration surface of the service.
type Config struct {
	Port        int
	Environment string

	MondayAPIURL string
	MondayAPIKey string
	BoardID      string

	CORSOrigins []string

	RateLimitWindow time.Duration
	RateLimitMax    int

	MaxUploadMB     int
	AllowedFileExts []string

	DuplicateCheckEnabled bool
	AutoEmailEnabled      bool
	SendEmails            bool
	FromEmail             string
	TeamEmail             string

	AWSRegion     string
	AWSEndpoint   string
	ArchiveBucket string
	ArchivePrefix string
}

// Load reads config.yaml if present, then lets environment variables
// override everything.
func Load() (Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	v.SetDefault("port", 3001)
	v.SetDefault("app_env", "development")
	v.SetDefault("monday_api_url", "https://api.monday.com/v2")
	v.SetDefault("cors_origins", "*")
	v.SetDefault("rate_limit_window_seconds", 900)
	v.SetDefault("rate_limit_max_requests", 100)
	v.SetDefault("max_file_size_mb", 10)
	v.SetDefault("allowed_file_types", "pdf,jpg,jpeg,png")
	v.SetDefault("duplicate_check_enabled", false)
	v.SetDefault("auto_email_enabled", false)
	v.SetDefault("send_emails", false)
	v.SetDefault("aws_region", "us-east-1")
	v.SetDefault("archive_prefix", "vendor-applications")

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		Port:                  v.GetInt("port"),
		Environment:           v.GetString("app_env"),
		MondayAPIURL:          v.GetString("monday_api_url"),
		MondayAPIKey:          v.GetString("monday_api_key"),
		BoardID:               v.GetString("monday_board_id"),
		CORSOrigins:           splitList(v.GetString("cors_origins")),
		RateLimitWindow:       time.Duration(v.GetInt("rate_limit_window_seconds")) * time.Second,
		RateLimitMax:          v.GetInt("rate_limit_max_requests"),
		MaxUploadMB:           v.GetInt("max_file_size_mb"),
		AllowedFileExts:       splitList(strings.ToLower(v.GetString("allowed_file_types"))),
		DuplicateCheckEnabled: v.GetBool("duplicate_check_enabled"),
		AutoEmailEnabled:      v.GetBool("auto_email_enabled"),
		SendEmails:            v.GetBool("send_emails"),
		FromEmail:             v.GetString("from_email"),
		TeamEmail:             v.GetString("team_email"),
		AWSRegion:             v.GetString("aws_region"),
		AWSEndpoint:           v.GetString("aws_endpoint_url"),
		ArchiveBucket:         v.GetString("archive_bucket"),
		ArchivePrefix:         v.GetString("archive_prefix"),
	}

	if !cfg.IsDevelopment() {
		if cfg.MondayAPIKey == "" {
			return Config{}, fmt.Errorf("MONDAY_API_KEY is required")
		}
		if cfg.BoardID == "" {
			return Config{}, fmt.Errorf("MONDAY_BOARD_ID is required")
		}
	}

	return cfg, nil
}

// IsDevelopment reports whether the service runs in development mode, which
// relaxes required credentials and includes error detail in 500 responses.
func (c Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// BoardConfigured reports whether the remote board is fully configured.
func (c Config) BoardConfigured() bool {
	return c.BoardID != ""
}

// MondayConfigured reports whether board API credentials are present.
func (c Config) MondayConfigured() bool {
	return c.MondayAPIKey != ""
}

// MaxUploadBytes is the request body cap for the application endpoint.
func (c Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// AllowsExtension reports whether a file extension (without dot, any case)
// is on the allow-list.
func (c Config) AllowsExtension(ext string) bool {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	for _, allowed := range c.AllowedFileExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
