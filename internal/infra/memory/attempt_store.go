package memory

import (
	"context"
	"sort"
	"sync"

	"olympiad-quiz-service/internal/domain"
)

// AttemptStore records quiz attempts in memory and enforces one attempt per
// (profile, date, type).
type AttemptStore struct {
	mu       sync.Mutex
	attempts map[attemptKey]domain.QuizAttempt
}

type attemptKey struct {
	profileID string
	date      string
	kind      string
}

func NewAttemptStore() *AttemptStore {
	return &AttemptStore{attempts: make(map[attemptKey]domain.QuizAttempt)}
}

func (s *AttemptStore) CreateAttempt(_ context.Context, attempt domain.QuizAttempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := attemptKey{attempt.ProfileID, attempt.Date, attempt.Type}
	if _, ok := s.attempts[key]; ok {
		return domain.ErrAttemptExists
	}
	s.attempts[key] = attempt
	return nil
}

func (s *AttemptStore) ListAttempts(_ context.Context, date string) ([]domain.QuizAttempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.QuizAttempt, 0)
	for key, attempt := range s.attempts {
		if key.date == date {
			out = append(out, attempt)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CompletedAt.Equal(out[j].CompletedAt) {
			return out[i].CompletedAt.Before(out[j].CompletedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// CreditLedger collects credit awards in memory.
type CreditLedger struct {
	mu     sync.Mutex
	awards []domain.CreditAward
}

func NewCreditLedger() *CreditLedger {
	return &CreditLedger{}
}

func (l *CreditLedger) Award(_ context.Context, award domain.CreditAward) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.awards = append(l.awards, award)
	return nil
}

// Balance sums every award made to profileID.
func (l *CreditLedger) Balance(profileID string) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := 0
	for _, a := range l.awards {
		if a.ProfileID == profileID {
			total += a.Amount
		}
	}
	return total
}
