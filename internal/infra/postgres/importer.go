package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"olympiad-quiz-service/internal/domain"
)

const upsertQuestionSQL = `
INSERT INTO questions (language, id, data) VALUES ($1, $2, $3::jsonb)
ON CONFLICT (language, id) DO UPDATE SET data = EXCLUDED.data`

// ImportQuestions upserts every document of bank, keyed by language and document id.
// Documents without an id get a random one. It returns the number of rows written.
func ImportQuestions(ctx context.Context, pool *pgxpool.Pool, bank domain.QuestionBank) (int, error) {
	batch := &pgx.Batch{}
	for lang, raws := range bank {
		lang = strings.ToLower(strings.TrimSpace(lang))
		for _, raw := range raws {
			id := domain.NormalizeQuestion(raw, lang).ID
			if id == "" {
				id = uuid.NewString()
			}
			data, err := json.Marshal(raw)
			if err != nil {
				return 0, fmt.Errorf("encode question %s: %w", id, err)
			}
			batch.Queue(upsertQuestionSQL, lang, id, string(data))
		}
	}
	if batch.Len() == 0 {
		return 0, nil
	}

	results := pool.SendBatch(ctx, batch)
	defer results.Close()
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return i, fmt.Errorf("import question %d: %w", i, err)
		}
	}
	return batch.Len(), nil
}
