package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"olympiad-quiz-service/internal/domain"
	"olympiad-quiz-service/pkg/validator"
)

// ConfigStore persists the singleton quiz configuration.
type ConfigStore interface {
	GetConfig(ctx context.Context) (domain.QuizConfig, error)
	SaveConfig(ctx context.Context, cfg domain.QuizConfig) error
}

// ConfigService reads and updates the daily quiz configuration.
type ConfigService struct {
	store    ConfigStore
	calendar Calendar
	log      *zap.Logger
}

func NewConfigService(store ConfigStore, calendar Calendar, log *zap.Logger) *ConfigService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ConfigService{store: store, calendar: calendar, log: log}
}

// Get returns the stored configuration, creating it with defaults on first read.
func (s *ConfigService) Get(ctx context.Context) (domain.QuizConfig, error) {
	cfg, err := s.store.GetConfig(ctx)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, domain.ErrConfigNotFound) {
		return domain.QuizConfig{}, err
	}

	cfg = domain.DefaultQuizConfig()
	cfg.UpdatedAt = s.calendar.Now().UTC()
	if err := s.store.SaveConfig(ctx, cfg); err != nil {
		return domain.QuizConfig{}, fmt.Errorf("create default quiz config: %w", err)
	}
	s.log.Info("created default quiz config", zap.Int("total", cfg.TotalQuestionCount))
	return cfg, nil
}

// ReadOnly returns a reader that falls back to the defaults without storing them.
func (s *ConfigService) ReadOnly() ConfigReader {
	return readOnlyConfig{store: s.store}
}

type readOnlyConfig struct {
	store ConfigStore
}

func (r readOnlyConfig) Get(ctx context.Context) (domain.QuizConfig, error) {
	cfg, err := r.store.GetConfig(ctx)
	if errors.Is(err, domain.ErrConfigNotFound) {
		return domain.DefaultQuizConfig(), nil
	}
	return cfg, err
}

// Update validates and stores a new configuration. A rejected update leaves the stored
// configuration untouched.
func (s *ConfigService) Update(ctx context.Context, cfg domain.QuizConfig) (domain.QuizConfig, error) {
	if err := ValidateQuizConfig(cfg); err != nil {
		return domain.QuizConfig{}, err
	}
	cfg.UpdatedAt = s.calendar.Now().UTC()
	if err := s.store.SaveConfig(ctx, cfg); err != nil {
		return domain.QuizConfig{}, fmt.Errorf("save quiz config: %w", err)
	}
	s.log.Info("quiz config updated",
		zap.Int("total", cfg.TotalQuestionCount),
		zap.Int("easy", cfg.EasyPercent),
		zap.Int("medium", cfg.MediumPercent),
		zap.Int("hard", cfg.HardPercent))
	return cfg, nil
}

// ValidateQuizConfig checks the count range and that the percentages sum to 100.
func ValidateQuizConfig(cfg domain.QuizConfig) error {
	if err := validator.ValidateStruct(cfg); err != nil {
		return &domain.ConfigurationError{Reason: err.Error()}
	}
	if sum := cfg.EasyPercent + cfg.MediumPercent + cfg.HardPercent; sum != 100 {
		return &domain.ConfigurationError{Reason: fmt.Sprintf("percentages must sum to 100, got %d", sum)}
	}
	return nil
}
