package integration

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	goredis "github.com/redis/go-redis/v9"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"go.uber.org/zap"

	"olympiad-quiz-service/internal/app"
	"olympiad-quiz-service/internal/domain"
	"olympiad-quiz-service/internal/infra/postgres"
	pgmigrations "olympiad-quiz-service/internal/infra/postgres/migrations"
	infraredis "olympiad-quiz-service/internal/infra/redis"
)

var fixedNow = time.Date(2025, 12, 1, 9, 30, 0, 0, time.UTC)

func TestDailySelectionEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()
	redisURL, redisCleanup := startRedis(t, ctx)
	defer redisCleanup()

	db := postgres.OpenBun(pgURL)
	defer db.Close()
	migrateDB(t, ctx, db)

	pool, err := pgxpool.Connect(ctx, pgURL)
	if err != nil {
		t.Fatalf("connect pg: %v", err)
	}
	defer pool.Close()

	n, err := postgres.ImportQuestions(ctx, pool, sampleBank())
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if n != 30 {
		t.Fatalf("expected 30 imported questions, got %d", n)
	}

	redisClient, err := redisClientFromURL(redisURL)
	if err != nil {
		t.Fatalf("redis client: %v", err)
	}
	defer redisClient.Close()

	calendar := app.NewCalendar(time.UTC, func() time.Time { return fixedNow })
	configs := app.NewConfigService(postgres.NewConfigStore(db), calendar, zap.NewNop())
	questions := postgres.NewQuestionRepository(pool)

	redisService := app.NewDailyQuizService(questions, infraredis.NewSelectionStore(redisClient, time.Hour), configs, calendar, domain.BaseLanguage, zap.NewNop())
	pgService := app.NewDailyQuizService(questions, postgres.NewSelectionStore(db), configs, calendar, domain.BaseLanguage, zap.NewNop())

	first, err := redisService.GetDailyQuiz(ctx, "english")
	if err != nil {
		t.Fatalf("daily quiz: %v", err)
	}
	if first.Cached || first.Selection.QuestionCount != 10 {
		t.Fatalf("expected fresh selection of 10, got cached=%v count=%d", first.Cached, first.Selection.QuestionCount)
	}
	second, err := redisService.GetDailyQuiz(ctx, "english")
	if err != nil {
		t.Fatalf("daily quiz again: %v", err)
	}
	if !second.Cached {
		t.Fatalf("expected second read from redis")
	}

	// Both backends compute the same selection for the same day.
	fromPG, err := pgService.GetOrCreate(ctx, "2025-12-01", "english")
	if err != nil {
		t.Fatalf("pg daily quiz: %v", err)
	}
	if got, want := questionIDs(fromPG.Selection), questionIDs(first.Selection); got != want {
		t.Fatalf("selection mismatch between stores:\n pg    %s\n redis %s", got, want)
	}
	cachedPG, err := pgService.GetOrCreate(ctx, "2025-12-01", "english")
	if err != nil || !cachedPG.Cached {
		t.Fatalf("expected postgres cache hit, err=%v cached=%v", err, cachedPG.Cached)
	}

	empty, err := pgService.GetOrCreate(ctx, "2025-12-01", "tamil")
	if err != nil {
		t.Fatalf("empty language: %v", err)
	}
	if empty.Message != app.NoQuestionsMessage {
		t.Fatalf("expected empty message, got %q", empty.Message)
	}
}

func TestAttemptsAndCreditsEndToEnd(t *testing.T) {
	ctx := context.Background()
	requireDocker(t)

	pgURL, pgCleanup := startPostgres(t, ctx)
	defer pgCleanup()

	db := postgres.OpenBun(pgURL)
	defer db.Close()
	migrateDB(t, ctx, db)

	calendar := app.NewCalendar(time.UTC, func() time.Time { return fixedNow })
	ledger := postgres.NewCreditLedger(db)
	service := app.NewAttemptService(postgres.NewAttemptStore(db), ledger, nil, calendar, 10, domain.BaseLanguage, zap.NewNop())

	sub := domain.Submission{ProfileID: "p1", Score: 90, CorrectAnswers: 9, TotalQuestions: 10}
	if _, err := service.Submit(ctx, sub); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := service.Submit(ctx, sub); err == nil {
		t.Fatalf("expected duplicate attempt to fail")
	}

	balance, err := ledger.Balance(ctx, "p1")
	if err != nil {
		t.Fatalf("balance: %v", err)
	}
	if balance != 10 {
		t.Fatalf("expected 10 credits, got %d", balance)
	}

	attempts, err := service.Attempts(ctx, "2025-12-01")
	if err != nil {
		t.Fatalf("attempts: %v", err)
	}
	if len(attempts) != 1 || attempts[0].CorrectAnswers != 9 {
		t.Fatalf("unexpected attempts: %+v", attempts)
	}

	configs := app.NewConfigService(postgres.NewConfigStore(db), calendar, zap.NewNop())
	if _, err := configs.Update(ctx, domain.QuizConfig{TotalQuestionCount: 20, EasyPercent: 30, MediumPercent: 30, HardPercent: 40}); err != nil {
		t.Fatalf("update config: %v", err)
	}
	cfg, err := configs.Get(ctx)
	if err != nil {
		t.Fatalf("get config: %v", err)
	}
	if cfg.TotalQuestionCount != 20 || cfg.HardPercent != 40 {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func migrateDB(t *testing.T, ctx context.Context, db *bun.DB) {
	t.Helper()
	migrator := migrate.NewMigrator(db, pgmigrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		t.Fatalf("migrator init: %v", err)
	}
	if _, err := migrator.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
}

func startPostgres(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "postgres:15-alpine",
		Env:          map[string]string{"POSTGRES_USER": "quiz", "POSTGRES_PASSWORD": "quizpass", "POSTGRES_DB": "quizdb"},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start postgres: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("port: %v", err)
	}
	dsn := fmt.Sprintf("postgres://quiz:quizpass@%s:%s/quizdb?sslmode=disable", host, port.Port())
	return dsn, func() {
		_ = container.Terminate(ctx)
	}
}

func startRedis(t *testing.T, ctx context.Context) (string, func()) {
	t.Helper()
	req := tc.ContainerRequest{
		Image:        "redis:7-alpine",
		ExposedPorts: []string{"6379/tcp"},
		WaitingFor:   wait.ForListeningPort("6379/tcp").WithStartupTimeout(30 * time.Second),
	}
	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		if strings.Contains(err.Error(), "Cannot connect to the Docker daemon") {
			t.Skipf("docker not available: %v", err)
		}
		t.Fatalf("start redis: %v", err)
	}
	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("redis host: %v", err)
	}
	port, err := container.MappedPort(ctx, "6379/tcp")
	if err != nil {
		t.Fatalf("redis port: %v", err)
	}
	url := fmt.Sprintf("redis://%s:%s", host, port.Port())
	return url, func() {
		_ = container.Terminate(ctx)
	}
}

// sampleBank builds ten questions per tier with mixed-case difficulty tags.
func sampleBank() domain.QuestionBank {
	var raws []domain.RawQuestion
	for _, tag := range []string{"Easy", "MEDIUM", "hard"} {
		for i := 0; i < 10; i++ {
			raws = append(raws, domain.RawQuestion{
				"_id":            fmt.Sprintf("%s-%02d", strings.ToLower(tag), i),
				"Question":       fmt.Sprintf("%s question %d", tag, i),
				"Option A":       "a",
				"Option B":       "b",
				"Option C":       "c",
				"Option D":       "d",
				"Correct Answer": "D",
				"Difficulty":     tag,
			})
		}
	}
	return domain.QuestionBank{"english": raws}
}

func questionIDs(sel domain.DailySelection) string {
	ids := make([]string, len(sel.Questions))
	for i, q := range sel.Questions {
		ids[i] = q.ID
	}
	return strings.Join(ids, ",")
}

func redisClientFromURL(url string) (*goredis.Client, error) {
	opts, err := goredis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	return goredis.NewClient(opts), nil
}

func requireDocker(t *testing.T) {
	t.Helper()
	if _, err := tc.NewDockerProvider(); err != nil {
		t.Skipf("docker not available: %v", err)
	}
}
