package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/uptrace/bun"
	"go.uber.org/zap"

	"olympiad-quiz-service/internal/app"
	"olympiad-quiz-service/internal/config"
	"olympiad-quiz-service/internal/domain"
	"olympiad-quiz-service/internal/infra/memory"
	"olympiad-quiz-service/internal/infra/postgres"
	redisstore "olympiad-quiz-service/internal/infra/redis"
)

// services holds the wired use cases plus the connections they depend on.
type services struct {
	daily    *app.DailyQuizService
	configs  *app.ConfigService
	attempts *app.AttemptService
	feed     *app.AttemptFeed

	pool  *pgxpool.Pool
	db    *bun.DB
	redis *redis.Client
}

// buildServices picks Postgres and Redis backed stores when configured and in-memory ones otherwise.
func buildServices(ctx context.Context, cfg config.Config, log *zap.Logger) (*services, error) {
	s := &services{}
	calendar := app.NewCalendar(cfg.Location(), nil)

	if cfg.Postgres.URL != "" {
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s.pool = pool
		s.db = postgres.OpenBun(cfg.Postgres.URL)
	}
	if cfg.Redis.Addr != "" {
		s.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var questions app.QuestionRepository
	if s.pool != nil {
		questions = postgres.NewQuestionRepository(s.pool)
	} else {
		bank, err := loadBank(cfg.Quiz.QuestionsFile)
		if err != nil {
			s.Close()
			return nil, err
		}
		questions = memory.NewQuestionRepository(bank)
		log.Info("using in-memory question bank", zap.Int("languages", len(bank)))
	}

	var selections app.SelectionStore
	switch {
	case s.redis != nil:
		selections = redisstore.NewSelectionStore(s.redis, config.TTLDuration(cfg.Redis.TTL, 48*time.Hour))
	case s.db != nil:
		selections = postgres.NewSelectionStore(s.db)
	default:
		selections = memory.NewSelectionStore()
	}

	var (
		configStore  app.ConfigStore
		attemptStore app.AttemptStore
		credits      app.CreditSink
	)
	if s.db != nil {
		configStore = postgres.NewConfigStore(s.db)
		attemptStore = postgres.NewAttemptStore(s.db)
		credits = postgres.NewCreditLedger(s.db)
	} else {
		configStore = memory.NewConfigStore()
		attemptStore = memory.NewAttemptStore()
		credits = memory.NewCreditLedger()
	}

	s.feed = app.NewAttemptFeed()
	s.configs = app.NewConfigService(configStore, calendar, log)
	s.daily = app.NewDailyQuizService(questions, selections, s.configs, calendar, cfg.Quiz.BaseLanguage, log)
	s.attempts = app.NewAttemptService(attemptStore, credits, s.feed, calendar, cfg.Quiz.CompletionCredits, cfg.Quiz.BaseLanguage, log)
	return s, nil
}

func (s *services) Close() {
	if s.redis != nil {
		_ = s.redis.Close()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	if s.pool != nil {
		s.pool.Close()
	}
}

func loadBank(path string) (domain.QuestionBank, error) {
	if path == "" {
		return sampleBank(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open questions file: %w", err)
	}
	defer f.Close()
	return domain.DecodeQuestionBank(f)
}
