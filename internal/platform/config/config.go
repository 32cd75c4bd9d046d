package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"
	_ "time/tzdata" // REPORT_TIMEZONE must resolve on minimal images

	"github.com/SscSPs/cashflow_app/internal/apperrors"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"github.com/ulule/limiter/v3"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      string
	EnableDBCheck bool
	RunMigrations bool

	DBDriver    string
	DatabaseURL string
	SQLitePath  string

	// Access tokens are issued by the hosted auth provider and verified here.
	JWTSecret   string
	JWTIssuer   string
	JWTAudience string

	CORSAllowedOrigins []string
	WriteRateLimit     string

	TopSpendingLimit int
	ReportLocation   *time.Location

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	SheetsSpreadsheetID   string
	GoogleCredentialsFile string
}

// EventsEnabled reports whether change events should be published.
func (c *Config) EventsEnabled() bool {
	return c.AMQPURL != ""
}

// SheetsEnabled reports whether the worker should mirror reports to Sheets.
func (c *Config) SheetsEnabled() bool {
	return c.SheetsSpreadsheetID != ""
}

// SlogLevel maps LOG_LEVEL onto a slog level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ENABLE_DB_CHECK", true)
	v.SetDefault("RUN_MIGRATIONS", true)
	v.SetDefault("DB_DRIVER", DriverPostgres)
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("SQLITE_PATH", "data/cashflow.db")
	v.SetDefault("AUTH_JWT_SECRET", "")
	v.SetDefault("AUTH_JWT_ISSUER", "")
	v.SetDefault("AUTH_JWT_AUDIENCE", "authenticated")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")
	v.SetDefault("WRITE_RATE_LIMIT", "60-M")
	v.SetDefault("TOP_SPENDING_LIMIT", 5)
	v.SetDefault("REPORT_TIMEZONE", "UTC")
	v.SetDefault("AMQP_URL", "")
	v.SetDefault("AMQP_EXCHANGE", "cashflow")
	v.SetDefault("AMQP_QUEUE", "transaction.changed")
	v.SetDefault("SHEETS_SPREADSHEET_ID", "")
	v.SetDefault("GOOGLE_CREDENTIALS_FILE", "")

	v.AutomaticEnv()

	cfg := &Config{
		Port:                  v.GetString("PORT"),
		IsProduction:          v.GetBool("IS_PRODUCTION"),
		LogLevel:              strings.ToLower(v.GetString("LOG_LEVEL")),
		EnableDBCheck:         v.GetBool("ENABLE_DB_CHECK"),
		RunMigrations:         v.GetBool("RUN_MIGRATIONS"),
		DBDriver:              strings.ToLower(v.GetString("DB_DRIVER")),
		DatabaseURL:           v.GetString("PGSQL_URL"),
		SQLitePath:            v.GetString("SQLITE_PATH"),
		JWTSecret:             v.GetString("AUTH_JWT_SECRET"),
		JWTIssuer:             v.GetString("AUTH_JWT_ISSUER"),
		JWTAudience:           v.GetString("AUTH_JWT_AUDIENCE"),
		CORSAllowedOrigins:    splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		WriteRateLimit:        v.GetString("WRITE_RATE_LIMIT"),
		TopSpendingLimit:      v.GetInt("TOP_SPENDING_LIMIT"),
		AMQPURL:               v.GetString("AMQP_URL"),
		AMQPExchange:          v.GetString("AMQP_EXCHANGE"),
		AMQPQueue:             v.GetString("AMQP_QUEUE"),
		SheetsSpreadsheetID:   v.GetString("SHEETS_SPREADSHEET_ID"),
		GoogleCredentialsFile: v.GetString("GOOGLE_CREDENTIALS_FILE"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.DBDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when DB_DRIVER is %s: %w", DriverPostgres, apperrors.ErrValidation)
		}
	case DriverSQLite:
		if cfg.SQLitePath == "" {
			return nil, fmt.Errorf("SQLITE_PATH is required when DB_DRIVER is %s: %w", DriverSQLite, apperrors.ErrValidation)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q: %w", cfg.DBDriver, apperrors.ErrValidation)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction {
			return nil, fmt.Errorf("AUTH_JWT_SECRET is required in production: %w", apperrors.ErrValidation)
		}
		log.Println("Warning: AUTH_JWT_SECRET not set. Every authenticated request will be rejected.")
	}

	if _, err := limiter.NewRateFromFormatted(cfg.WriteRateLimit); err != nil {
		return nil, fmt.Errorf("invalid WRITE_RATE_LIMIT %q: %w", cfg.WriteRateLimit, apperrors.ErrValidation)
	}

	loc, err := time.LoadLocation(v.GetString("REPORT_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", v.GetString("REPORT_TIMEZONE"), apperrors.ErrValidation)
	}
	cfg.ReportLocation = loc

	if len(cfg.CORSAllowedOrigins) == 0 {
		return nil, fmt.Errorf("CORS_ALLOWED_ORIGINS must list at least one origin: %w", apperrors.ErrValidation)
	}

	if cfg.TopSpendingLimit < 0 {
		log.Printf("Warning: TOP_SPENDING_LIMIT is negative (%d). Treating it as unlimited.\n", cfg.TopSpendingLimit)
		cfg.TopSpendingLimit = 0
	}

	if cfg.SheetsEnabled() && cfg.GoogleCredentialsFile == "" {
		log.Println("Warning: SHEETS_SPREADSHEET_ID set without GOOGLE_CREDENTIALS_FILE. Falling back to application default credentials.")
	}

	return cfg, nil
}

func splitList(s string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
