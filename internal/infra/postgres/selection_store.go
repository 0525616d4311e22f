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

type selectionModel struct {
	bun.BaseModel `bun:"table:daily_selections"`

	SelectionDate string                `bun:"selection_date,pk"`
	Language      string                `bun:"language,pk"`
	Questions     []domain.QuestionView `bun:"questions,type:jsonb,notnull"`
	Seed          int64                 `bun:"seed,notnull"`
	QuestionCount int                   `bun:"question_count,notnull"`
	GeneratedAt   time.Time             `bun:"generated_at,notnull"`
}

// SelectionStore persists daily selections in the daily_selections table.
type SelectionStore struct {
	db *bun.DB
}

func NewSelectionStore(db *bun.DB) *SelectionStore {
	return &SelectionStore{db: db}
}

func (s *SelectionStore) GetSelection(ctx context.Context, date, language string) (domain.DailySelection, error) {
	var m selectionModel
	err := s.db.NewSelect().
		Model(&m).
		Where("selection_date = ?", date).
		Where("language = ?", language).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.DailySelection{}, domain.ErrSelectionNotFound
		}
		return domain.DailySelection{}, fmt.Errorf("select daily selection: %w", err)
	}
	return domain.DailySelection{
		Date:          m.SelectionDate,
		Language:      m.Language,
		Questions:     m.Questions,
		Seed:          m.Seed,
		GeneratedAt:   m.GeneratedAt,
		QuestionCount: m.QuestionCount,
	}, nil
}

// UpsertSelection writes the whole row in one statement.
func (s *SelectionStore) UpsertSelection(ctx context.Context, selection domain.DailySelection) error {
	m := selectionModel{
		SelectionDate: selection.Date,
		Language:      selection.Language,
		Questions:     selection.Questions,
		Seed:          selection.Seed,
		QuestionCount: selection.QuestionCount,
		GeneratedAt:   selection.GeneratedAt,
	}
	_, err := s.db.NewInsert().
		Model(&m).
		On("CONFLICT (selection_date, language) DO UPDATE").
		Set("questions = EXCLUDED.questions").
		Set("seed = EXCLUDED.seed").
		Set("question_count = EXCLUDED.question_count").
		Set("generated_at = EXCLUDED.generated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("upsert daily selection: %w", err)
	}
	return nil
}
