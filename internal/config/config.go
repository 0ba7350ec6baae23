package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/MikeSquared-Agency/Triage/internal/scoring"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Hermes   HermesConfig   `yaml:"hermes"`
	Scoring  ScoringConfig  `yaml:"scoring"`
	History  HistoryConfig  `yaml:"history"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type ServerConfig struct {
	Port               int    `yaml:"port"`
	MetricsPort        int    `yaml:"metrics_port"`
	AdminToken         string `yaml:"admin_token"`
	ReadTimeoutMs      int    `yaml:"read_timeout_ms"`
	WriteTimeoutMs     int    `yaml:"write_timeout_ms"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type HermesConfig struct {
	URL        string `yaml:"url"`
	RPCSubject string `yaml:"rpc_subject"`
}

type ScoringConfig struct {
	DefaultStrategy string         `yaml:"default_strategy"`
	Weights         ScoringWeights `yaml:"weights"`
}

type ScoringWeights struct {
	Urgency    float64 `yaml:"urgency"`
	Importance float64 `yaml:"importance"`
	Effort     float64 `yaml:"effort"`
	Dependency float64 `yaml:"dependency"`
}

type HistoryConfig struct {
	Capacity int `yaml:"capacity"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func (c *Config) ReadTimeout() time.Duration {
	return time.Duration(c.Server.ReadTimeoutMs) * time.Millisecond
}

func (c *Config) WriteTimeout() time.Duration {
	return time.Duration(c.Server.WriteTimeoutMs) * time.Millisecond
}

// ScoringWeights returns the configured smart_balance weights.
func (c *Config) ScoringWeights() scoring.WeightSet {
	return scoring.WeightSet{
		Urgency:    c.Scoring.Weights.Urgency,
		Importance: c.Scoring.Weights.Importance,
		Effort:     c.Scoring.Weights.Effort,
		Dependency: c.Scoring.Weights.Dependency,
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if err := c.ScoringWeights().Validate(); err != nil {
		return fmt.Errorf("scoring weights: %w", err)
	}
	if _, ok := scoring.ParseStrategy(c.Scoring.DefaultStrategy); !ok {
		return fmt.Errorf("unknown default strategy %q", c.Scoring.DefaultStrategy)
	}
	if c.History.Capacity <= 0 {
		return fmt.Errorf("history capacity must be positive, got %d", c.History.Capacity)
	}
	switch c.Logging.Format {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.Logging.Format)
	}
	return nil
}

func Load(path string) (*Config, error) {
	defaults := scoring.DefaultWeights()
	cfg := &Config{
		Server: ServerConfig{
			Port:               8700,
			MetricsPort:        8701,
			ReadTimeoutMs:      10000,
			WriteTimeoutMs:     10000,
			RateLimitPerMinute: 120,
		},
		Hermes: HermesConfig{
			RPCSubject: "triage.rpc.analyze",
		},
		Scoring: ScoringConfig{
			DefaultStrategy: scoring.DefaultStrategyName,
			Weights: ScoringWeights{
				Urgency:    defaults.Urgency,
				Importance: defaults.Importance,
				Effort:     defaults.Effort,
				Dependency: defaults.Dependency,
			},
		},
		History: HistoryConfig{
			Capacity: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("TRIAGE_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = n
		}
	}
	if v := os.Getenv("TRIAGE_METRICS_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.MetricsPort = n
		}
	}
	if v := os.Getenv("TRIAGE_ADMIN_TOKEN"); v != "" {
		cfg.Server.AdminToken = v
	}
	if v := os.Getenv("TRIAGE_RATE_LIMIT_PER_MINUTE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Server.RateLimitPerMinute = n
		}
	}
	if v := os.Getenv("TRIAGE_DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("TRIAGE_HERMES_URL"); v != "" {
		cfg.Hermes.URL = v
	}
	if v := os.Getenv("TRIAGE_HERMES_RPC_SUBJECT"); v != "" {
		cfg.Hermes.RPCSubject = v
	}
	if v := os.Getenv("TRIAGE_DEFAULT_STRATEGY"); v != "" {
		cfg.Scoring.DefaultStrategy = v
	}
	if v := os.Getenv("TRIAGE_HISTORY_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.History.Capacity = n
		}
	}
	if v := os.Getenv("TRIAGE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("TRIAGE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
}
