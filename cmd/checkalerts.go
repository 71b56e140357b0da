package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert"
	alertRepoPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/repository"
	alertUCPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/usecase"
	catRepoPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/repository"
)

var checkAlertsCmd = &cobra.Command{
	Use:   "check-alerts",
	Short: "Compare alerts against current prices and mail drops",
	Run: func(cmd *cobra.Command, args []string) {
		defer appLogger.Sync()

		db := connectPostgres()
		defer db.Close()

		uc := alertUCPkg.NewAlertUseCase(
			alertRepoPkg.NewPGRepository(db),
			catRepoPkg.NewPGRepository(db),
			newMailer(),
			appLogger,
		)

		report, err := uc.CheckAll(cmd.Context())
		if err != nil {
			if errors.Is(err, alert.ErrCheckRunning) {
				appLogger.Warn("another alert check is running, nothing to do")
				return
			}
			appLogger.Error("alert check failed", zap.Error(err))
			os.Exit(1)
		}

		appLogger.Info("alert check complete",
			zap.Int("checked", report.Checked),
			zap.Int("skipped", report.Skipped),
			zap.Int("notified", report.Notified))
	},
}

func init() {
	rootCmd.AddCommand(checkAlertsCmd)
}
