package cli

import (
	"context"
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// NewPreviewCmd prints the selection for a date without writing the cache or the config.
func NewPreviewCmd(configPath *string) *cobra.Command {
	var date, language string
	cmd := &cobra.Command{
		Use:   "preview",
		Short: "Print the daily selection for a date and language",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), cmd.OutOrStdout(), *configPath, date, language)
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "date as YYYY-MM-DD (defaults to today)")
	cmd.Flags().StringVar(&language, "language", "", "question language (defaults to the base language)")
	return cmd
}

func runPreview(ctx context.Context, out io.Writer, configPath, date, language string) error {
	cfg, _, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	log := setupLogger(cfg.Log.Env)
	defer log.Sync()

	svc, err := buildServices(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Close()

	if date == "" {
		date = svc.daily.Today()
	}
	preview := svc.daily.WithConfig(svc.configs.ReadOnly())
	quiz, err := preview.Compute(ctx, date, preview.ResolveLanguage(language))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(quiz.Selection)
}
