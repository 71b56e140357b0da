package cmd

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/orchestrator"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run scrapers, ingest their output and mail a report",
	Long: "Full update run: every configured scraper sequentially with a\n" +
		"per-scraper timeout, then ingestion, temp cleanup and a summary mail.",
	Run: func(cmd *cobra.Command, args []string) {
		runOrchestration(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runOrchestration(ctx context.Context) {
	defer appLogger.Sync()

	steps := parseScraperCommands(cfg.Scrapers.Commands)
	if len(steps) == 0 {
		appLogger.Warn("no scraper commands configured, running ingestion only")
	}

	runner := orchestrator.NewRunner(newMailer(), cfg.SMTP.ReportTo, cfg.Scrapers.Timeout, appLogger)
	report := runner.Run(ctx, steps, runIngest, cfg.Ingest.TempDirs)

	appLogger.Info("update run finished",
		zap.Int("steps", len(report.Steps)),
		zap.Int("errors", len(report.Errors)),
		zap.Duration("total", report.FinishedAt.Sub(report.StartedAt)))

	if len(report.Errors) > 0 {
		os.Exit(1)
	}
}

// parseScraperCommands splits "name=shell command" pairs. Entries without a
// name get one derived from the command's first word.
func parseScraperCommands(raw []string) []orchestrator.Step {
	var steps []orchestrator.Step
	for _, entry := range raw {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		name, command, found := strings.Cut(entry, "=")
		if !found {
			command = entry
			name = strings.Fields(entry)[0]
		}
		steps = append(steps, orchestrator.Step{
			Name:    strings.TrimSpace(name),
			Command: strings.TrimSpace(command),
		})
	}
	return steps
}
