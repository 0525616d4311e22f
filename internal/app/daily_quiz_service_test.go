package app_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"olympiad-quiz-service/internal/app"
	"olympiad-quiz-service/internal/domain"
	"olympiad-quiz-service/internal/infra/memory"
)

var fixedNow = time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)

func newCalendar() app.Calendar {
	return app.NewCalendar(time.UTC, func() time.Time { return fixedNow })
}

func tieredBank(language string, easy, medium, hard int) domain.QuestionBank {
	var raws []domain.RawQuestion
	add := func(tag string, n int) {
		for i := 0; i < n; i++ {
			raws = append(raws, domain.RawQuestion{
				"_id":      fmt.Sprintf("%s-%02d", tag, i),
				"Question": fmt.Sprintf("%s question %d", tag, i),
				"Option A": "a", "Option B": "b", "Option C": "c", "Option D": "d",
				"Answer":     "C",
				"Difficulty": tag,
			})
		}
	}
	add("Easy", easy)
	add("medium", medium)
	add("HARD", hard)
	return domain.QuestionBank{language: raws}
}

func untaggedBank(language string, n int) domain.QuestionBank {
	raws := make([]domain.RawQuestion, n)
	for i := range raws {
		raws[i] = domain.RawQuestion{
			"_id":        fmt.Sprintf("q%02d", i),
			"Question":   fmt.Sprintf("question %d", i),
			"Difficulty": "level-3",
		}
	}
	return domain.QuestionBank{language: raws}
}

type fixture struct {
	service    *app.DailyQuizService
	selections *memory.SelectionStore
	configs    *memory.ConfigStore
}

func newFixture(t *testing.T, questions app.QuestionRepository, cfg *domain.QuizConfig) fixture {
	t.Helper()
	configs := memory.NewConfigStore()
	if cfg != nil {
		require.NoError(t, configs.SaveConfig(context.Background(), *cfg))
	}
	selections := memory.NewSelectionStore()
	configService := app.NewConfigService(configs, newCalendar(), zap.NewNop())
	return fixture{
		service:    app.NewDailyQuizService(questions, selections, configService, newCalendar(), domain.BaseLanguage, zap.NewNop()),
		selections: selections,
		configs:    configs,
	}
}

func ids(sel domain.DailySelection) []string {
	out := make([]string, len(sel.Questions))
	for i, q := range sel.Questions {
		out[i] = q.ID
	}
	return out
}

func TestDailyQuizEndToEnd(t *testing.T) {
	ctx := context.Background()
	cfg := domain.QuizConfig{TotalQuestionCount: 5, EasyPercent: 40, MediumPercent: 40, HardPercent: 20}
	f := newFixture(t, memory.NewQuestionRepository(tieredBank("english", 3, 3, 3)), &cfg)

	first, err := f.service.GetOrCreate(ctx, "2025-12-01", "english")
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, int64(20251201), first.Selection.Seed)
	assert.Equal(t, "2025-12-01", first.Selection.Date)
	require.Len(t, first.Selection.Questions, 5)
	assert.Equal(t, 5, first.Selection.QuestionCount)

	tiers := map[domain.Difficulty]int{}
	for _, q := range first.Selection.Questions {
		tiers[q.Difficulty]++
		assert.Len(t, q.Options, domain.OptionCount)
		assert.Equal(t, 2, q.CorrectAnswer)
	}
	assert.Equal(t, map[domain.Difficulty]int{
		domain.DifficultyEasy:   2,
		domain.DifficultyMedium: 2,
		domain.DifficultyHard:   1,
	}, tiers)

	second, err := f.service.GetOrCreate(ctx, "2025-12-01", "english")
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, ids(first.Selection), ids(second.Selection))
	assert.Equal(t, first.Selection, second.Selection)
}

func TestDailyQuizDeterministicAcrossInstances(t *testing.T) {
	ctx := context.Background()
	bank := tieredBank("hindi", 12, 9, 7)

	a := newFixture(t, memory.NewQuestionRepository(bank), nil)
	b := newFixture(t, memory.NewQuestionRepository(bank), nil)

	qa, err := a.service.GetOrCreate(ctx, "2026-03-14", "hindi")
	require.NoError(t, err)
	qb, err := b.service.GetOrCreate(ctx, "2026-03-14", "hindi")
	require.NoError(t, err)

	assert.Equal(t, ids(qa.Selection), ids(qb.Selection))
	assert.Equal(t, qa.Selection.Seed, qb.Selection.Seed)
	assert.Len(t, qa.Selection.Questions, 10)
}

func TestDailyQuizFallbackForUntaggedPool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewQuestionRepository(untaggedBank("english", 10)), nil)

	quiz, err := f.service.GetOrCreate(ctx, "2025-12-01", "english")
	require.NoError(t, err)

	want := []string{"q00", "q01", "q02", "q03", "q04", "q05", "q06", "q07", "q08", "q09"}
	assert.Equal(t, want, ids(quiz.Selection), "fallback keeps stored order")
	for _, q := range quiz.Selection.Questions {
		assert.Equal(t, domain.DifficultyMedium, q.Difficulty)
	}
	assert.Equal(t, 1, f.selections.Len(), "fallback selection is persisted")
}

func TestDailyQuizFallbackRespectsTotal(t *testing.T) {
	ctx := context.Background()
	cfg := domain.QuizConfig{TotalQuestionCount: 5, EasyPercent: 40, MediumPercent: 40, HardPercent: 20}
	f := newFixture(t, memory.NewQuestionRepository(untaggedBank("english", 10)), &cfg)

	quiz, err := f.service.GetOrCreate(ctx, "2025-12-01", "english")
	require.NoError(t, err)
	assert.Equal(t, []string{"q00", "q01", "q02", "q03", "q04"}, ids(quiz.Selection))
}

func TestDailyQuizEmptyPool(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewQuestionRepository(nil), nil)

	quiz, err := f.service.GetOrCreate(ctx, "2025-12-01", "tamil")
	require.NoError(t, err)
	assert.Empty(t, quiz.Selection.Questions)
	assert.NotNil(t, quiz.Selection.Questions)
	assert.Equal(t, 0, quiz.Selection.QuestionCount)
	assert.Equal(t, app.NoQuestionsMessage, quiz.Message)
	assert.False(t, quiz.Cached)
	assert.Equal(t, 0, f.selections.Len(), "empty selections are not cached")
}

func TestDailyQuizCrossDayIndependence(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewQuestionRepository(tieredBank("english", 10, 10, 10)), nil)

	day1, err := f.service.GetOrCreate(ctx, "2025-12-01", "english")
	require.NoError(t, err)
	_, err = f.service.GetOrCreate(ctx, "2025-12-02", "english")
	require.NoError(t, err)

	stored, err := f.selections.GetSelection(ctx, "2025-12-01", "english")
	require.NoError(t, err)
	assert.Equal(t, day1.Selection, stored)
	assert.Equal(t, 2, f.selections.Len())
}

func TestDailyQuizRecomputesEmptyStoredSelection(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewQuestionRepository(tieredBank("english", 4, 4, 4)), nil)
	require.NoError(t, f.selections.UpsertSelection(ctx, domain.DailySelection{
		Date: "2025-12-01", Language: "english", Questions: []domain.QuestionView{},
	}))

	quiz, err := f.service.GetOrCreate(ctx, "2025-12-01", "english")
	require.NoError(t, err)
	assert.False(t, quiz.Cached)
	assert.Len(t, quiz.Selection.Questions, 10)
}

func TestDailyQuizConcurrentFirstAccess(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewQuestionRepository(tieredBank("bengali", 20, 20, 20)), nil)

	const workers = 16
	results := make([][]string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			quiz, err := f.service.GetOrCreate(ctx, "2025-12-01", "bengali")
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			results[i] = ids(quiz.Selection)
		}(i)
	}
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, results[0], results[i])
	}
	stored, err := f.selections.GetSelection(ctx, "2025-12-01", "bengali")
	require.NoError(t, err)
	assert.Equal(t, results[0], ids(stored))
}

func TestGetDailyQuizUsesTodayAndBaseLanguage(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewQuestionRepository(tieredBank("english", 5, 5, 5)), nil)

	quiz, err := f.service.GetDailyQuiz(ctx, "klingon")
	require.NoError(t, err)
	assert.Equal(t, "2025-12-01", quiz.Selection.Date)
	assert.Equal(t, "english", quiz.Selection.Language)
}

func TestGetOrCreateRejectsBadDate(t *testing.T) {
	f := newFixture(t, memory.NewQuestionRepository(nil), nil)
	_, err := f.service.GetOrCreate(context.Background(), "2025/12/01", "english")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

var errStoreDown = errors.New("store unreachable")

type failingQuestions struct{}

func (failingQuestions) FetchByDifficulty(context.Context, string, domain.Difficulty) ([]domain.Question, error) {
	return nil, errStoreDown
}

func (failingQuestions) FetchAll(context.Context, string, int) ([]domain.Question, error) {
	return nil, errStoreDown
}

func (failingQuestions) CountAll(context.Context, string) (int, error) {
	return 0, errStoreDown
}

func TestDailyQuizRepositoryFailureIsNotCached(t *testing.T) {
	f := newFixture(t, failingQuestions{}, nil)

	_, err := f.service.GetOrCreate(context.Background(), "2025-12-01", "english")
	assert.ErrorIs(t, err, errStoreDown)
	assert.Equal(t, 0, f.selections.Len())
}

type failingSelections struct{ *memory.SelectionStore }

func (failingSelections) UpsertSelection(context.Context, domain.DailySelection) error {
	return errStoreDown
}

func TestDailyQuizPersistFailureFailsRequest(t *testing.T) {
	configs := app.NewConfigService(memory.NewConfigStore(), newCalendar(), zap.NewNop())
	service := app.NewDailyQuizService(
		memory.NewQuestionRepository(tieredBank("english", 5, 5, 5)),
		failingSelections{memory.NewSelectionStore()},
		configs, newCalendar(), "", nil)

	_, err := service.GetOrCreate(context.Background(), "2025-12-01", "english")
	assert.ErrorIs(t, err, errStoreDown)
}

func TestComputeDoesNotPersist(t *testing.T) {
	f := newFixture(t, memory.NewQuestionRepository(tieredBank("english", 5, 5, 5)), nil)

	quiz, err := f.service.Compute(context.Background(), "2025-12-01", "english")
	require.NoError(t, err)
	assert.Len(t, quiz.Selection.Questions, 10)
	assert.Equal(t, 0, f.selections.Len())
}

func TestComputeWithReadOnlyConfigWritesNothing(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, memory.NewQuestionRepository(tieredBank("english", 5, 5, 5)), nil)
	reader := app.NewConfigService(f.configs, newCalendar(), zap.NewNop()).ReadOnly()

	quiz, err := f.service.WithConfig(reader).Compute(ctx, "2025-12-01", "english")
	require.NoError(t, err)
	assert.Equal(t, 10, quiz.Selection.QuestionCount)

	_, err = f.configs.GetConfig(ctx)
	assert.ErrorIs(t, err, domain.ErrConfigNotFound)
	assert.Equal(t, 0, f.selections.Len())
}
