package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"olympiad-quiz-service/internal/domain"
)

// QuestionRepository reads raw JSONB question documents from Postgres and normalizes them.
// Every language lives in the same table, partitioned by the language column.
type QuestionRepository struct {
	pool *pgxpool.Pool
}

func NewQuestionRepository(pool *pgxpool.Pool) *QuestionRepository {
	return &QuestionRepository{pool: pool}
}

const fetchByDifficultySQL = `
SELECT id, data FROM questions
WHERE language = $1
  AND EXISTS (
    SELECT 1 FROM jsonb_each_text(data) kv
    WHERE lower(kv.key) = 'difficulty' AND lower(trim(kv.value)) = $2
  )
ORDER BY id`

func (r *QuestionRepository) FetchByDifficulty(ctx context.Context, language string, difficulty domain.Difficulty) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, fetchByDifficultySQL, language, string(difficulty))
	if err != nil {
		return nil, fmt.Errorf("query %s questions: %w", difficulty, err)
	}
	qs, err := scanQuestions(rows, language)
	if err != nil {
		return nil, err
	}

	// Keep only rows whose normalized tag agrees with the SQL match.
	out := qs[:0]
	for _, q := range qs {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *QuestionRepository) FetchAll(ctx context.Context, language string, limit int) ([]domain.Question, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, data FROM questions WHERE language = $1 ORDER BY id LIMIT $2`, language, limit)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	return scanQuestions(rows, language)
}

func (r *QuestionRepository) CountAll(ctx context.Context, language string) (int, error) {
	var n int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM questions WHERE language = $1`, language).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}
	return n, nil
}

func scanQuestions(rows pgx.Rows, language string) ([]domain.Question, error) {
	defer rows.Close()
	var out []domain.Question
	for rows.Next() {
		var (
			id  string
			raw []byte
		)
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		var doc domain.RawQuestion
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, fmt.Errorf("unmarshal question %s: %w", id, err)
		}
		q := domain.NormalizeQuestion(doc, language)
		q.ID = id
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read questions: %w", err)
	}
	return out, nil
}
