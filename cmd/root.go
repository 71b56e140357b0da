package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ripifopo/PROGRA-PRO-CS-sub000/config"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/cache"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/database/postgres"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/logger"
	"github.com/ripifopo/PROGRA-PRO-CS-sub000/pkg/mailer"
)

var (
	cfg       *config.Config
	appLogger logger.ZapLogger
)

var rootCmd = &cobra.Command{
	Use:   "medprice",
	Short: "Medicine price tracker - ingestion, API and alert jobs",
	Long: "Backend for the medicine price comparison service: ingests scraped\n" +
		"pharmacy catalogs, serves the query API and runs price-drop alerts.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	_ = godotenv.Load() // Load .env file if it exists
	cfg = config.LoadEnv()

	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}
	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}
	appLogger = logger.NewZapLogger(logConfig)
}

// connectPostgres opens the pool and bootstraps the schema. Fatal on failure:
// nothing in this service works without the database.
func connectPostgres() *sqlx.DB {
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	if err := postgres.Migrate(db); err != nil {
		appLogger.Fatal("Could not run schema migration", zap.Error(err))
	}
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))
	return db
}

// connectRedis is best-effort: the API degrades to uncached reads when the
// cache is down.
func connectRedis() *cache.RedisClient {
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Warn("Could not connect to Redis (queries will be uncached)", zap.Error(err))
		return nil
	}
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))
	return redisClient
}

func newMailer() mailer.Sender {
	return mailer.NewSMTPSender(&mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
	})
}
