package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	alertH "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/handler"
	alertRepoPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/repository"
	alertUCPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/alert/usecase"
	catH "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/handler"
	catRepoPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/repository"
	catUCPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/usecase"
	freqH "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent/handler"
	freqRepoPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent/repository"
	freqUCPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/frequent/usecase"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP query and alert API",
	Run: func(cmd *cobra.Command, args []string) {
		runServe()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe() {
	defer appLogger.Sync()

	// 1. Infrastructure
	db := connectPostgres()
	defer db.Close()

	redisClient := connectRedis()
	if redisClient != nil {
		defer redisClient.Close()
	}

	mail := newMailer()

	// 2. Repositories
	catRepo := catRepoPkg.NewPGRepository(db)
	alertRepo := alertRepoPkg.NewPGRepository(db)
	freqRepo := freqRepoPkg.NewPGRepository(db)

	// 3. UseCases
	catUC := catUCPkg.NewCatalogUseCase(catRepo, redisClient, appLogger)
	alertUC := alertUCPkg.NewAlertUseCase(alertRepo, catRepo, mail, appLogger)
	freqUC := freqUCPkg.NewFrequentUseCase(freqRepo, appLogger)

	// 4. Handlers
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/health", func(w http.ResponseWriter, r *http.Request) {
		api.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	catH.NewCatalogHandler(catUC, appLogger).Register(mux)
	alertH.NewAlertHandler(alertUC, cfg.Alerts.CronToken, appLogger).Register(mux)
	freqH.NewFrequentHandler(freqUC, appLogger).Register(mux)

	// 5. Serve
	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}
	server := &http.Server{
		Addr:         port,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	go func() {
		appLogger.Info("Starting HTTP server", zap.String("port", port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		appLogger.Error("forced shutdown", zap.Error(err))
	}
	appLogger.Info("Server stopped")
}
