package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"olympiad-quiz-service/internal/domain"
)

// NoQuestionsMessage is reported when a language has no questions at all.
const NoQuestionsMessage = "No questions available in database"

// QuestionRepository reads the per-language question bank.
// Implementations return questions ordered by ID and match difficulty case-insensitively.
type QuestionRepository interface {
	FetchByDifficulty(ctx context.Context, language string, difficulty domain.Difficulty) ([]domain.Question, error)
	FetchAll(ctx context.Context, language string, limit int) ([]domain.Question, error)
	CountAll(ctx context.Context, language string) (int, error)
}

// SelectionStore persists daily selections keyed by (date, language).
// UpsertSelection must replace the whole record atomically.
type SelectionStore interface {
	GetSelection(ctx context.Context, date, language string) (domain.DailySelection, error)
	UpsertSelection(ctx context.Context, selection domain.DailySelection) error
}

// ConfigReader provides the current quiz configuration.
type ConfigReader interface {
	Get(ctx context.Context) (domain.QuizConfig, error)
}

// DailyQuizService serves the same question set to everyone for a given day and language.
// Cache population is not locked: concurrent first requests compute identical selections
// and the last upsert wins.
type DailyQuizService struct {
	questions    QuestionRepository
	selections   SelectionStore
	config       ConfigReader
	calendar     Calendar
	baseLanguage string
	log          *zap.Logger
}

func NewDailyQuizService(questions QuestionRepository, selections SelectionStore, config ConfigReader, calendar Calendar, baseLanguage string, log *zap.Logger) *DailyQuizService {
	if baseLanguage == "" {
		baseLanguage = domain.BaseLanguage
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DailyQuizService{
		questions:    questions,
		selections:   selections,
		config:       config,
		calendar:     calendar,
		baseLanguage: domain.NormalizeLanguage(baseLanguage, domain.BaseLanguage),
		log:          log,
	}
}

// WithConfig returns a copy of the service that reads its configuration from config.
func (s *DailyQuizService) WithConfig(config ConfigReader) *DailyQuizService {
	c := *s
	c.config = config
	return &c
}

// Today returns the date key used for requests arriving now.
func (s *DailyQuizService) Today() string {
	return s.calendar.Today()
}

// ResolveLanguage maps a requested language to a supported collection.
func (s *DailyQuizService) ResolveLanguage(language string) string {
	return domain.NormalizeLanguage(language, s.baseLanguage)
}

// GetDailyQuiz returns today's selection for the requested language.
func (s *DailyQuizService) GetDailyQuiz(ctx context.Context, language string) (domain.DailyQuiz, error) {
	return s.GetOrCreate(ctx, s.Today(), s.ResolveLanguage(language))
}

// GetOrCreate returns the stored selection for (date, language), computing and persisting
// it first when none exists. An empty result is returned without being stored.
func (s *DailyQuizService) GetOrCreate(ctx context.Context, date, language string) (domain.DailyQuiz, error) {
	if _, err := SeedForDate(date); err != nil {
		return domain.DailyQuiz{}, err
	}

	stored, err := s.selections.GetSelection(ctx, date, language)
	switch {
	case err == nil && len(stored.Questions) > 0:
		s.log.Debug("daily selection cache hit",
			zap.String("date", date), zap.String("language", language), zap.Int("count", stored.QuestionCount))
		return domain.DailyQuiz{Selection: stored, Cached: true}, nil
	case err != nil && !errors.Is(err, domain.ErrSelectionNotFound):
		return domain.DailyQuiz{}, fmt.Errorf("load daily selection: %w", err)
	}

	quiz, err := s.Compute(ctx, date, language)
	if err != nil {
		return domain.DailyQuiz{}, err
	}
	if len(quiz.Selection.Questions) == 0 {
		return quiz, nil
	}

	if err := s.selections.UpsertSelection(ctx, quiz.Selection); err != nil {
		s.log.Error("persist daily selection failed",
			zap.String("date", date), zap.String("language", language), zap.Error(err))
		return domain.DailyQuiz{}, fmt.Errorf("persist daily selection: %w", err)
	}
	s.log.Info("daily selection generated",
		zap.String("date", date),
		zap.String("language", language),
		zap.Int64("seed", quiz.Selection.Seed),
		zap.Int("count", quiz.Selection.QuestionCount))
	return quiz, nil
}

// Compute builds the selection for (date, language) without reading or writing the cache.
func (s *DailyQuizService) Compute(ctx context.Context, date, language string) (domain.DailyQuiz, error) {
	seed, err := SeedForDate(date)
	if err != nil {
		return domain.DailyQuiz{}, err
	}
	cfg, err := s.config.Get(ctx)
	if err != nil {
		return domain.DailyQuiz{}, fmt.Errorf("load quiz config: %w", err)
	}
	dist := ComputeDistribution(cfg)

	buckets, err := s.fetchBuckets(ctx, language)
	if err != nil {
		return domain.DailyQuiz{}, err
	}

	var picked []domain.Question
	if buckets.Empty() {
		total, err := s.questions.CountAll(ctx, language)
		if err != nil {
			return domain.DailyQuiz{}, fmt.Errorf("count questions: %w", err)
		}
		if total == 0 {
			s.log.Warn("no questions available", zap.String("date", date), zap.String("language", language))
			return domain.DailyQuiz{
				Selection: s.newSelection(date, language, seed, nil),
				Message:   NoQuestionsMessage,
			}, nil
		}

		// Untagged pool: take the first Total in stored order, unshuffled.
		picked, err = s.questions.FetchAll(ctx, language, dist.Total)
		if err != nil {
			return domain.DailyQuiz{}, fmt.Errorf("fetch untagged questions: %w", err)
		}
		if len(picked) > dist.Total {
			picked = picked[:dist.Total]
		}
		s.log.Warn("difficulty buckets empty, using unfiltered questions",
			zap.String("date", date), zap.String("language", language),
			zap.Int("pool", total), zap.Int("count", len(picked)))
	} else {
		picked = SelectQuestions(buckets, dist, seed)
		if len(picked) < dist.Total {
			s.log.Info("daily selection below configured total",
				zap.String("date", date), zap.String("language", language),
				zap.Int("total", dist.Total), zap.Int("count", len(picked)))
		}
	}

	return domain.DailyQuiz{Selection: s.newSelection(date, language, seed, picked)}, nil
}

// fetchBuckets loads the three difficulty buckets concurrently. Each result lands in its own
// slot so completion order never affects selection.
func (s *DailyQuizService) fetchBuckets(ctx context.Context, language string) (Buckets, error) {
	results := make([][]domain.Question, len(domain.Difficulties))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range domain.Difficulties {
		g.Go(func() error {
			qs, err := s.questions.FetchByDifficulty(gctx, language, d)
			if err != nil {
				return fmt.Errorf("fetch %s questions: %w", d, err)
			}
			results[i] = qs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	buckets := make(Buckets, len(domain.Difficulties))
	for i, d := range domain.Difficulties {
		buckets[d] = results[i]
	}
	return buckets, nil
}

func (s *DailyQuizService) newSelection(date, language string, seed int64, picked []domain.Question) domain.DailySelection {
	views := make([]domain.QuestionView, 0, len(picked))
	for _, q := range picked {
		views = append(views, q.View())
	}
	return domain.DailySelection{
		Date:          date,
		Language:      language,
		Questions:     views,
		Seed:          seed,
		GeneratedAt:   s.calendar.Now().UTC(),
		QuestionCount: len(views),
	}
}
