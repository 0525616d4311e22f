package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"olympiad-quiz-service/internal/config"
	"olympiad-quiz-service/internal/domain"
	"olympiad-quiz-service/internal/infra/postgres"
)

// NewImportCmd loads a JSON question bank into Postgres.
func NewImportCmd(configPath *string) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a JSON question bank into Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), *configPath, file)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", `question bank file of the form {"english": [...], ...}`)
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runImport(ctx context.Context, configPath, file string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log := setupLogger(cfg.Log.Env)
	defer log.Sync()

	if err := runMigrationsWithConfig(ctx, cfg, log); err != nil {
		return err
	}

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("open question bank: %w", err)
	}
	defer f.Close()
	bank, err := domain.DecodeQuestionBank(f)
	if err != nil {
		return err
	}

	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return fmt.Errorf("connect postgres: %w", err)
	}
	defer pool.Close()

	n, err := postgres.ImportQuestions(ctx, pool, bank)
	if err != nil {
		return err
	}
	log.Info("questions imported", zap.Int("count", n), zap.Int("languages", len(bank)))
	return nil
}
