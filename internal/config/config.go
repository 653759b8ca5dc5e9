package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration.
// Supports environment variables with sensible defaults.
//
// Environment Variables:
// Gemini Configuration:
// - GEMINI_API_KEY: API key for the translation service (required)
// - GEMINI_API_URL: API endpoint base URL (default: Google generative language API)
// - GEMINI_MODEL: Model name to use (default: gemini-2.0-flash)
// - GEMINI_TIMEOUT: Per-request timeout in seconds (default: 300)
// - GEMINI_TEMPERATURE: Sampling temperature (default: 0.3)
//
// Pipeline Configuration:
// - BATCH_SIZE: Cues per translation request (default: 50)
//
// Watch Mode Configuration:
// - MEDIA_DIR: Directory scanned for untranslated subtitles (default: /media)
// - CRON_EXPR: Scan schedule (default: hourly)
// - RUN_DB_PATH: SQLite run-history path (default: data/runs.db)
//
// System Configuration:
// - LOG_LEVEL: debug|info|warn|error (default: info)
type Config struct {
	Gemini   GeminiConfig   `json:"gemini"`
	Pipeline PipelineConfig `json:"pipeline"`
	Watch    WatchConfig    `json:"watch"`
	System   SystemConfig   `json:"system"`
}

// GeminiConfig holds the translation service client settings.
type GeminiConfig struct {
	APIKey      string  `json:"api_key"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	Timeout     int     `json:"timeout"`
	Temperature float64 `json:"temperature"`
}

// PipelineConfig holds batch pipeline settings.
type PipelineConfig struct {
	BatchSize int `json:"batch_size"`
}

// WatchConfig holds the cron watch service settings.
type WatchConfig struct {
	MediaDir  string `json:"media_dir"`
	CronExpr  string `json:"cron_expr"`
	RunDBPath string `json:"run_db_path"`
}

// SystemConfig holds the system configuration.
type SystemConfig struct {
	LogLevel string `json:"log_level"`
}

// Option is a function type for configuring Config
type Option func(*Config)

// NewFromEnv creates a new Config instance with values from environment
// variables and options.
func NewFromEnv(opts ...Option) (*Config, error) {
	config := &Config{
		Gemini: GeminiConfig{
			APIKey:      getEnvString("GEMINI_API_KEY", ""),
			APIURL:      getEnvString("GEMINI_API_URL", ""),
			Model:       getEnvString("GEMINI_MODEL", "gemini-2.0-flash"),
			Timeout:     getEnvInt("GEMINI_TIMEOUT", 300),
			Temperature: getEnvFloat("GEMINI_TEMPERATURE", 0.3),
		},
		Pipeline: PipelineConfig{
			BatchSize: getEnvInt("BATCH_SIZE", 50),
		},
		Watch: WatchConfig{
			MediaDir:  getEnvString("MEDIA_DIR", "/media"),
			CronExpr:  getEnvString("CRON_EXPR", "0 * * * *"),
			RunDBPath: getEnvString("RUN_DB_PATH", "data/runs.db"),
		},
		System: SystemConfig{
			LogLevel: getEnvString("LOG_LEVEL", "info"),
		},
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// validate checks if all required configuration is properly set
func (c *Config) validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Pipeline.BatchSize <= 0 {
		return fmt.Errorf("BATCH_SIZE must be greater than 0")
	}
	return nil
}

// getEnvString gets a string value from environment variables with default
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
