package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"olympiad-quiz-service/internal/domain"
)

// SelectionStore keeps daily selections in Redis, one JSON document per key:
//
//	SET quiz:daily:{date}:{language} <selection json> [EX ttl]
//
// A single SET replaces the whole document, so readers never see a partial selection.
type SelectionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSelectionStore builds a store whose entries expire after ttl (plus up to 10% jitter).
// A zero ttl keeps entries forever.
func NewSelectionStore(client *redis.Client, ttl time.Duration) *SelectionStore {
	return &SelectionStore{client: client, ttl: ttl}
}

func (s *SelectionStore) GetSelection(ctx context.Context, date, language string) (domain.DailySelection, error) {
	data, err := s.client.Get(ctx, s.key(date, language)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.DailySelection{}, domain.ErrSelectionNotFound
		}
		return domain.DailySelection{}, fmt.Errorf("redis get selection: %w", err)
	}
	var sel domain.DailySelection
	if err := json.Unmarshal(data, &sel); err != nil {
		return domain.DailySelection{}, fmt.Errorf("decode selection: %w", err)
	}
	return sel, nil
}

func (s *SelectionStore) UpsertSelection(ctx context.Context, selection domain.DailySelection) error {
	data, err := json.Marshal(selection)
	if err != nil {
		return fmt.Errorf("encode selection: %w", err)
	}
	if err := s.client.Set(ctx, s.key(selection.Date, selection.Language), data, s.ttlWithJitter()).Err(); err != nil {
		return fmt.Errorf("redis set selection: %w", err)
	}
	return nil
}

func (s *SelectionStore) key(date, language string) string {
	return "quiz:daily:" + date + ":" + language
}

func (s *SelectionStore) ttlWithJitter() time.Duration {
	if s.ttl <= 0 {
		return 0
	}
	jitterMax := int64(s.ttl) / 10
	return s.ttl + time.Duration(rand.Int63n(jitterMax+1))
}
