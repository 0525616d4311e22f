package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"olympiad-quiz-service/internal/domain"
)

type settingsModel struct {
	bun.BaseModel `bun:"table:quiz_settings"`

	ConfigType             string    `bun:"config_type,pk"`
	DailyQuizQuestionCount int       `bun:"daily_quiz_question_count,notnull"`
	EasyPercentage         int       `bun:"easy_percentage,notnull"`
	MediumPercentage       int       `bun:"medium_percentage,notnull"`
	HardPercentage         int       `bun:"hard_percentage,notnull"`
	UpdatedAt              time.Time `bun:"updated_at,notnull"`
}

// ConfigStore keeps the singleton quiz configuration in quiz_settings.
type ConfigStore struct {
	db *bun.DB
}

func NewConfigStore(db *bun.DB) *ConfigStore {
	return &ConfigStore{db: db}
}

func (s *ConfigStore) GetConfig(ctx context.Context) (domain.QuizConfig, error) {
	var m settingsModel
	err := s.db.NewSelect().Model(&m).Where("config_type = ?", domain.QuizConfigType).Limit(1).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.QuizConfig{}, domain.ErrConfigNotFound
		}
		return domain.QuizConfig{}, fmt.Errorf("select quiz config: %w", err)
	}
	return domain.QuizConfig{
		TotalQuestionCount: m.DailyQuizQuestionCount,
		EasyPercent:        m.EasyPercentage,
		MediumPercent:      m.MediumPercentage,
		HardPercent:        m.HardPercentage,
		UpdatedAt:          m.UpdatedAt,
	}, nil
}

func (s *ConfigStore) SaveConfig(ctx context.Context, cfg domain.QuizConfig) error {
	m := settingsModel{
		ConfigType:             domain.QuizConfigType,
		DailyQuizQuestionCount: cfg.TotalQuestionCount,
		EasyPercentage:         cfg.EasyPercent,
		MediumPercentage:       cfg.MediumPercent,
		HardPercentage:         cfg.HardPercent,
		UpdatedAt:              cfg.UpdatedAt,
	}
	_, err := s.db.NewInsert().
		Model(&m).
		On("CONFLICT (config_type) DO UPDATE").
		Set("daily_quiz_question_count = EXCLUDED.daily_quiz_question_count").
		Set("easy_percentage = EXCLUDED.easy_percentage").
		Set("medium_percentage = EXCLUDED.medium_percentage").
		Set("hard_percentage = EXCLUDED.hard_percentage").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("save quiz config: %w", err)
	}
	return nil
}
