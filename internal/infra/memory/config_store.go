package memory

import (
	"context"
	"sync"

	"olympiad-quiz-service/internal/domain"
)

// ConfigStore keeps the quiz configuration in memory.
type ConfigStore struct {
	mu  sync.RWMutex
	cfg *domain.QuizConfig
}

func NewConfigStore() *ConfigStore {
	return &ConfigStore{}
}

func (s *ConfigStore) GetConfig(_ context.Context) (domain.QuizConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return domain.QuizConfig{}, domain.ErrConfigNotFound
	}
	return *s.cfg, nil
}

func (s *ConfigStore) SaveConfig(_ context.Context, cfg domain.QuizConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}
