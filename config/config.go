package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	SMTP     SMTPConfig
	Ingest   IngestConfig
	Scrapers ScrapersConfig
	Alerts   AlertsConfig
}

type ServerConfig struct {
	AppEnv   string
	HTTPPort string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime int
	ConnMaxIdleTime int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	ReportTo []string
}

type IngestConfig struct {
	// DataRoot is the product_updates tree produced by the scrapers:
	// <DataRoot>/<pharmacy>/<YYYY-MM-DD>/<category>.json(l)
	DataRoot string
	TempDirs []string
}

type ScrapersConfig struct {
	// Commands are "name=shell command" pairs, run sequentially.
	Commands []string
	Timeout  time.Duration
}

type AlertsConfig struct {
	// CronToken authorizes POST /api/alerts/check.
	CronToken string
}

func LoadEnv() *Config {
	// Basic config loading
	// In a real scenario, use structured config loader like viper or koanf
	return &Config{
		Server: ServerConfig{
			AppEnv:   getEnv("APP_ENV", "dev"),
			HTTPPort: getEnv("HTTP_PORT", ":8080"),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Postgres: PostgresConfig{
			Host:            getEnv("POSTGRES_HOST", "localhost"),
			Port:            getEnv("POSTGRES_PORT", "5432"),
			User:            getEnv("POSTGRES_USER", "medprice"),
			Password:        getEnv("POSTGRES_PASSWORD", "medprice"),
			DBName:          getEnv("POSTGRES_DB", "medprice"),
			SSLMode:         getEnv("POSTGRES_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("POSTGRES_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("POSTGRES_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvInt("POSTGRES_CONN_MAX_LIFETIME", 300),
			ConnMaxIdleTime: getEnvInt("POSTGRES_CONN_MAX_IDLE_TIME", 60),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		SMTP: SMTPConfig{
			Host:     getEnv("SMTP_HOST", "localhost"),
			Port:     getEnvInt("SMTP_PORT", 587),
			Username: getEnv("SMTP_USERNAME", ""),
			Password: getEnv("SMTP_PASSWORD", ""),
			From:     getEnv("SMTP_FROM", "alerts@medprice.local"),
			ReportTo: getEnvSlice("SMTP_REPORT_TO", []string{}),
		},
		Ingest: IngestConfig{
			DataRoot: getEnv("INGEST_DATA_ROOT", "product_updates"),
			TempDirs: getEnvSlice("INGEST_TEMP_DIRS", []string{}),
		},
		Scrapers: ScrapersConfig{
			Commands: getEnvSlice("SCRAPER_COMMANDS", []string{}),
			Timeout:  time.Duration(getEnvInt("SCRAPER_TIMEOUT_SECONDS", 1800)) * time.Second,
		},
		Alerts: AlertsConfig{
			CronToken: getEnv("ALERTS_CRON_TOKEN", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
