package cmd

import (
	"context"
	"errors"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	catRepoPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/repository"
	catUCPkg "github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/catalog/usecase"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/internal/ingest"
)

var ingestCmd *cobra.Command

func init() {
	ingestCmd = &cobra.Command{
		Use:   "ingest",
		Short: "Ingest scraped catalogs into the database",
		Long: "Reads the product_updates tree, rebuilds each pharmacy's catalog from\n" +
			"its most recent snapshot and appends every snapshot to its price history.",
		Run: func(cmd *cobra.Command, args []string) {
			if err := runIngest(cmd.Context()); err != nil {
				appLogger.Error("ingestion failed", zap.Error(err))
				os.Exit(1)
			}
		},
	}
	ingestCmd.Flags().String("root", "", "Data root (overrides INGEST_DATA_ROOT)")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(ctx context.Context) error {
	defer appLogger.Sync()

	db := connectPostgres()
	defer db.Close()

	root := cfg.Ingest.DataRoot
	if v, _ := ingestCmd.Flags().GetString("root"); v != "" {
		root = v
	}

	catRepo := catRepoPkg.NewPGRepository(db)
	pipeline := ingest.NewPipeline(catRepo, appLogger)

	res, err := pipeline.Run(ctx, root)
	if err != nil {
		if errors.Is(err, ingest.ErrNoData) {
			// Nothing was wiped; the previous catalog stands.
			appLogger.Warn("no data found, catalogs left untouched", zap.String("root", root))
		}
		return err
	}

	// Cached query results are stale now.
	redisClient := connectRedis()
	if redisClient != nil {
		defer redisClient.Close()
		catUCPkg.NewCatalogUseCase(catRepo, redisClient, appLogger).InvalidateCache(ctx)
	}

	appLogger.Info("ingestion complete",
		zap.Int("pharmacies", res.Pharmacies),
		zap.Int("files", res.Files),
		zap.Strings("failed", res.Failed))
	return nil
}
