package memory

import (
	"context"
	"slices"
	"sync"

	"olympiad-quiz-service/internal/domain"
)

// SelectionStore is an in-memory implementation of app.SelectionStore.
type SelectionStore struct {
	mu         sync.RWMutex
	selections map[selectionKey]domain.DailySelection
}

type selectionKey struct {
	date     string
	language string
}

func NewSelectionStore() *SelectionStore {
	return &SelectionStore{
		selections: make(map[selectionKey]domain.DailySelection),
	}
}

func (s *SelectionStore) GetSelection(_ context.Context, date, language string) (domain.DailySelection, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sel, ok := s.selections[selectionKey{date, language}]
	if !ok {
		return domain.DailySelection{}, domain.ErrSelectionNotFound
	}
	return cloneSelection(sel), nil
}

func (s *SelectionStore) UpsertSelection(_ context.Context, selection domain.DailySelection) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[selectionKey{selection.Date, selection.Language}] = cloneSelection(selection)
	return nil
}

// Len reports how many selections are stored.
func (s *SelectionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.selections)
}

func cloneSelection(sel domain.DailySelection) domain.DailySelection {
	questions := make([]domain.QuestionView, len(sel.Questions))
	for i, q := range sel.Questions {
		q.Options = slices.Clone(q.Options)
		questions[i] = q
	}
	sel.Questions = questions
	return sel
}
