package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/pickpool/go/internal/reminders"
	"github.com/mcdev12/pickpool/go/internal/scoring"
)

// Config is the pool config file. Every section has a default, so the file
// itself is optional.
type Config struct {
	Scoring   scoring.Rules `yaml:"scoring"`
	Reminders struct {
		Cron     string             `yaml:"cron"`
		Template reminders.Template `yaml:"template"`
	} `yaml:"reminders"`
	Reconcile struct {
		Cron string        `yaml:"cron"`
		Idle time.Duration `yaml:"idle"`
	} `yaml:"reconcile"`
	Schedule struct {
		TemplatePath string `yaml:"template_path"`
	} `yaml:"schedule"`
	Standings struct {
		CacheTTL time.Duration `yaml:"cache_ttl"`
	} `yaml:"standings"`
}

func defaultConfig() *Config {
	var c Config
	c.Scoring = scoring.DefaultRules()
	c.Reminders.Cron = "0 18 * * 4"
	c.Reminders.Template = reminders.DefaultTemplate()
	c.Reconcile.Cron = "*/5 * * * *"
	c.Reconcile.Idle = time.Hour
	c.Standings.CacheTTL = 10 * time.Minute
	return &c
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// loadConfig layers the YAML file over the defaults, then environment
// overrides over both.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warn().Str("path", path).Msg("config file not found, using defaults")
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Reminders.Cron = getEnv("REMINDER_CRON", config.Reminders.Cron)
	config.Reconcile.Cron = getEnv("RECONCILE_CRON", config.Reconcile.Cron)
	config.Standings.CacheTTL = getEnvAsDuration("STANDINGS_CACHE_TTL", config.Standings.CacheTTL)
	config.Schedule.TemplatePath = getEnv("SCHEDULE_TEMPLATE", config.Schedule.TemplatePath)

	if err := config.Scoring.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scoring rules: %w", err)
	}
	return config, nil
}
