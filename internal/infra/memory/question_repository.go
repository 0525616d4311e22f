package memory

import (
	"context"
	"slices"
	"strings"
	"sync"

	"olympiad-quiz-service/internal/domain"
)

// QuestionRepository serves a question bank held in memory (useful for tests/demos).
type QuestionRepository struct {
	mu        sync.RWMutex
	questions map[string][]domain.Question
}

// NewQuestionRepository normalizes every raw document of bank up front.
func NewQuestionRepository(bank domain.QuestionBank) *QuestionRepository {
	r := &QuestionRepository{questions: make(map[string][]domain.Question)}
	for lang, raws := range bank {
		r.Add(lang, raws...)
	}
	return r
}

// Add appends raw documents to the language's collection.
func (r *QuestionRepository) Add(language string, raws ...domain.RawQuestion) {
	lang := strings.ToLower(strings.TrimSpace(language))
	r.mu.Lock()
	defer r.mu.Unlock()
	qs := r.questions[lang]
	for _, raw := range raws {
		qs = append(qs, domain.NormalizeQuestion(raw, lang))
	}
	slices.SortStableFunc(qs, func(a, b domain.Question) int {
		return strings.Compare(a.ID, b.ID)
	})
	r.questions[lang] = qs
}

func (r *QuestionRepository) FetchByDifficulty(_ context.Context, language string, difficulty domain.Difficulty) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Question
	for _, q := range r.questions[language] {
		if q.Difficulty == difficulty {
			out = append(out, q)
		}
	}
	return out, nil
}

func (r *QuestionRepository) FetchAll(_ context.Context, language string, limit int) ([]domain.Question, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	qs := r.questions[language]
	if limit > 0 && len(qs) > limit {
		qs = qs[:limit]
	}
	return slices.Clone(qs), nil
}

func (r *QuestionRepository) CountAll(_ context.Context, language string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.questions[language]), nil
}
