package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"olympiad-quiz-service/internal/domain"
)

type attemptModel struct {
	bun.BaseModel `bun:"table:quiz_attempts"`

	ID             string    `bun:"id,pk"`
	ProfileID      string    `bun:"profile_id,notnull"`
	UserID         string    `bun:"user_id"`
	AttemptDate    string    `bun:"attempt_date,notnull"`
	AttemptType    string    `bun:"attempt_type,notnull"`
	Language       string    `bun:"language,notnull"`
	Score          int       `bun:"score,notnull"`
	CorrectAnswers int       `bun:"correct_answers,notnull"`
	TotalQuestions int       `bun:"total_questions,notnull"`
	TimeSpent      int       `bun:"time_spent,notnull"`
	CompletedAt    time.Time `bun:"completed_at,notnull"`
}

// AttemptStore records quiz attempts; the (profile_id, attempt_date, attempt_type)
// unique index rejects repeats.
type AttemptStore struct {
	db *bun.DB
}

func NewAttemptStore(db *bun.DB) *AttemptStore {
	return &AttemptStore{db: db}
}

func (s *AttemptStore) CreateAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	m := attemptModel{
		ID:             attempt.ID,
		ProfileID:      attempt.ProfileID,
		UserID:         attempt.UserID,
		AttemptDate:    attempt.Date,
		AttemptType:    attempt.Type,
		Language:       attempt.Language,
		Score:          attempt.Score,
		CorrectAnswers: attempt.CorrectAnswers,
		TotalQuestions: attempt.TotalQuestions,
		TimeSpent:      attempt.TimeSpent,
		CompletedAt:    attempt.CompletedAt,
	}
	res, err := s.db.NewInsert().Model(&m).On("CONFLICT (profile_id, attempt_date, attempt_type) DO NOTHING").Exec(ctx)
	if err != nil {
		return fmt.Errorf("insert quiz attempt: %w", err)
	}
	return attemptInserted(res)
}

// attemptInserted maps an insert that skipped on conflict to domain.ErrAttemptExists.
func attemptInserted(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("quiz attempt rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrAttemptExists
	}
	return nil
}

func (s *AttemptStore) ListAttempts(ctx context.Context, date string) ([]domain.QuizAttempt, error) {
	var models []attemptModel
	err := s.db.NewSelect().
		Model(&models).
		Where("attempt_date = ?", date).
		Order("completed_at ASC", "id ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("list quiz attempts: %w", err)
	}
	out := make([]domain.QuizAttempt, 0, len(models))
	for _, m := range models {
		out = append(out, domain.QuizAttempt{
			ID:             m.ID,
			ProfileID:      m.ProfileID,
			UserID:         m.UserID,
			Date:           m.AttemptDate,
			Type:           m.AttemptType,
			Language:       m.Language,
			Score:          m.Score,
			CorrectAnswers: m.CorrectAnswers,
			TotalQuestions: m.TotalQuestions,
			TimeSpent:      m.TimeSpent,
			CompletedAt:    m.CompletedAt,
		})
	}
	return out, nil
}

type creditModel struct {
	bun.BaseModel `bun:"table:credit_ledger"`

	ID        string    `bun:"id,pk"`
	ProfileID string    `bun:"profile_id,notnull"`
	Amount    int       `bun:"amount,notnull"`
	Reason    string    `bun:"reason,notnull"`
	Reference string    `bun:"reference"`
	CreatedAt time.Time `bun:"created_at,notnull"`
}

// CreditLedger appends credit awards to credit_ledger.
type CreditLedger struct {
	db *bun.DB
}

func NewCreditLedger(db *bun.DB) *CreditLedger {
	return &CreditLedger{db: db}
}

func (l *CreditLedger) Award(ctx context.Context, award domain.CreditAward) error {
	m := creditModel{
		ID:        award.ID,
		ProfileID: award.ProfileID,
		Amount:    award.Amount,
		Reason:    award.Reason,
		Reference: award.Reference,
		CreatedAt: award.CreatedAt,
	}
	if _, err := l.db.NewInsert().Model(&m).Exec(ctx); err != nil {
		return fmt.Errorf("insert credit award: %w", err)
	}
	return nil
}

// Balance sums every award made to profileID.
func (l *CreditLedger) Balance(ctx context.Context, profileID string) (int, error) {
	var total int
	err := l.db.NewSelect().
		Model((*creditModel)(nil)).
		ColumnExpr("coalesce(sum(amount), 0)").
		Where("profile_id = ?", profileID).
		Scan(ctx, &total)
	if err != nil {
		return 0, fmt.Errorf("sum credits: %w", err)
	}
	return total, nil
}
