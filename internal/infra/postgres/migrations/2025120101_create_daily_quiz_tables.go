package migrations

import (
	"context"
	_ "embed"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 2025120101_create_daily_quiz_tables.sql
var createDailyQuizTablesSQL string

var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, createDailyQuizTablesSQL)
			return err
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `
DROP TABLE IF EXISTS credit_ledger;
DROP TABLE IF EXISTS quiz_attempts;
DROP TABLE IF EXISTS quiz_settings;
DROP TABLE IF EXISTS daily_selections;
DROP TABLE IF EXISTS questions;`)
			return err
		},
	)
}
