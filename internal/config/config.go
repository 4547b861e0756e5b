package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Observability
	MetricsEnabled bool
	LogLevel       slog.Level
}

// fileConfig is the optional YAML file named by PPTXDOM_CONFIG. Unset
// fields keep their defaults; environment variables win over the file.
type fileConfig struct {
	Port           string `yaml:"port"`
	APIKey         string `yaml:"api_key"`
	WorkerCount    int    `yaml:"worker_count"`
	MaxQueueSize   int    `yaml:"max_queue_size"`
	MaxUploadBytes int64  `yaml:"max_upload_bytes"`
	JobTTL         string `yaml:"job_ttl"`
	MetricsEnabled *bool  `yaml:"metrics_enabled"`
	LogLevel       string `yaml:"log_level"`
}

func defaults() Config {
	return Config{
		Port:           "8090",
		WorkerCount:    4,
		MaxQueueSize:   100,
		MaxUploadBytes: 52428800, // 50MB
		JobTTL:         1 * time.Hour,
		MetricsEnabled: true,
		LogLevel:       slog.LevelInfo,
	}
}

// Load builds the configuration from defaults, the optional YAML file and
// the environment, in that order.
func Load() (Config, error) {
	base := defaults()
	if path := os.Getenv("PPTXDOM_CONFIG"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if base, err = applyYAML(base, b); err != nil {
			return Config{}, fmt.Errorf("%s: %w", path, err)
		}
	}

	cfg := Config{
		Port: envOr("PORT", base.Port),

		APIKey: envOr("PPTXDOM_API_KEY", base.APIKey),

		WorkerCount:  envInt("WORKER_COUNT", base.WorkerCount),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", base.MaxQueueSize),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", base.MaxUploadBytes),

		JobTTL: envDuration("JOB_TTL", base.JobTTL),

		MetricsEnabled: envBool("METRICS_ENABLED", base.MetricsEnabled),
		LogLevel:       envLevel("LOG_LEVEL", base.LogLevel),
	}
	return clamp(cfg), nil
}

func applyYAML(cfg Config, b []byte) (Config, error) {
	var f fileConfig
	if err := yaml.Unmarshal(b, &f); err != nil {
		return cfg, fmt.Errorf("parse yaml: %w", err)
	}
	if f.Port != "" {
		cfg.Port = f.Port
	}
	if f.APIKey != "" {
		cfg.APIKey = f.APIKey
	}
	if f.WorkerCount != 0 {
		cfg.WorkerCount = f.WorkerCount
	}
	if f.MaxQueueSize != 0 {
		cfg.MaxQueueSize = f.MaxQueueSize
	}
	if f.MaxUploadBytes != 0 {
		cfg.MaxUploadBytes = f.MaxUploadBytes
	}
	if f.JobTTL != "" {
		d, err := time.ParseDuration(f.JobTTL)
		if err != nil {
			return cfg, fmt.Errorf("job_ttl: %w", err)
		}
		cfg.JobTTL = d
	}
	if f.MetricsEnabled != nil {
		cfg.MetricsEnabled = *f.MetricsEnabled
	}
	if f.LogLevel != "" {
		lvl, err := parseLevel(f.LogLevel)
		if err != nil {
			return cfg, err
		}
		cfg.LogLevel = lvl
	}
	return cfg, nil
}

func clamp(cfg Config) Config {
	d := defaults()
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = d.WorkerCount
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = d.MaxQueueSize
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = d.MaxUploadBytes
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = d.JobTTL
	}
	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PPTXDOM_API_KEY is required")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	if v := os.Getenv(key); v != "" {
		if lvl, err := parseLevel(v); err == nil {
			return lvl
		}
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("log level %q: %w", s, err)
	}
	return lvl, nil
}
