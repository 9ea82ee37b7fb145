// Package config loads companion configuration from an optional YAML file
// and environment variables.
package config

import (
	"os"
	"path/filepath"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config holds all mood-companion configuration.
type Config struct {
	LLM     LLMConfig     `yaml:"llm"`
	Storage StorageConfig `yaml:"storage"`
	Logging LoggingConfig `yaml:"logging"`
}

// LLMConfig configures the Gemini collaborator.
type LLMConfig struct {
	APIKey      string `yaml:"api_key" env:"GEMINI_API_KEY"`
	Model       string `yaml:"model" env:"GEMINI_MODEL" env-default:"gemini-2.0-flash"`
	CallTimeout string `yaml:"call_timeout" env:"LLM_CALL_TIMEOUT" env-default:"30s"`
}

// StorageConfig configures the SQLite store and profile directory.
type StorageConfig struct {
	DBPath      string `yaml:"db_path" env:"MOOD_COMPANION_DB"`
	ProfileDir  string `yaml:"profile_dir" env:"MOOD_COMPANION_PROFILES"`
	HistoryDays int    `yaml:"history_days" env:"MOOD_HISTORY_DAYS" env-default:"30"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	File  string `yaml:"file" env:"LOG_FILE"`
}

// Load reads companion.yaml when present, then applies environment
// overrides and defaults.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := cleanenv.ReadConfig(path, &cfg); err != nil {
				return nil, err
			}
			applyPathDefaults(&cfg)
			return &cfg, nil
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, err
	}
	applyPathDefaults(&cfg)
	return &cfg, nil
}

func applyPathDefaults(cfg *Config) {
	if cfg.Storage.DBPath == "" {
		home, _ := os.UserHomeDir()
		cfg.Storage.DBPath = filepath.Join(home, ".mood-companion", "companion.db")
	}
	if cfg.Storage.ProfileDir == "" {
		cfg.Storage.ProfileDir = filepath.Join(filepath.Dir(cfg.Storage.DBPath), "profiles")
	}
}
