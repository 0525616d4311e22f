package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"olympiad-quiz-service/internal/domain"
	"olympiad-quiz-service/pkg/validator"
)

// DefaultCompletionCredits is awarded per daily quiz unless the config says otherwise.
const DefaultCompletionCredits = 10

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	Log struct {
		Env string `yaml:"env" validate:"omitempty,oneof=development production"`
	} `yaml:"log"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db" validate:"min=0"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	Quiz struct {
		Timezone          string `yaml:"timezone"`
		BaseLanguage      string `yaml:"base_language"`
		CompletionCredits int    `yaml:"completion_credits" validate:"min=0"`
		QuestionsFile     string `yaml:"questions_file"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path, applies defaults and validates the result.
func Load(path string) (Config, error) {
	cfg := Config{}
	// Keys missing from the file keep these values; an explicit 0 disables credits.
	cfg.Quiz.CompletionCredits = DefaultCompletionCredits
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Default returns the configuration used when no file is given.
func Default() Config {
	cfg := Config{}
	cfg.Quiz.CompletionCredits = DefaultCompletionCredits
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Server.Port == "" {
		c.Server.Port = "8080"
	}
	if len(c.Server.AllowedOrigins) == 0 {
		c.Server.AllowedOrigins = []string{"*"}
	}
	if c.Log.Env == "" {
		c.Log.Env = "production"
	}
	if c.Quiz.Timezone == "" {
		c.Quiz.Timezone = "UTC"
	}
	if c.Quiz.BaseLanguage == "" {
		c.Quiz.BaseLanguage = domain.BaseLanguage
	}
}

// Validate checks field constraints and that the timezone and base language are usable.
func (c Config) Validate() error {
	if err := validator.ValidateStruct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Quiz.Timezone); err != nil {
		return fmt.Errorf("quiz.timezone: %w", err)
	}
	if !domain.IsSupportedLanguage(c.Quiz.BaseLanguage) {
		return fmt.Errorf("quiz.base_language: unsupported language %q", c.Quiz.BaseLanguage)
	}
	return nil
}

// Location returns the timezone that decides the quiz day.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Quiz.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
