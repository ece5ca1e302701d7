package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DB      DBConfig
	Recon   ReconConfig
	ITC     ITCConfig
	Reports ReportsConfig
	Log     LogConfig
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// ReconConfig holds reconciliation matcher tolerances.
type ReconConfig struct {
	DateToleranceDays  int     `mapstructure:"date_tolerance_days"`
	AmountTolerancePct float64 `mapstructure:"amount_tolerance_pct"`
	AmountToleranceAbs float64 `mapstructure:"amount_tolerance_abs"`
	ConfidenceFloor    int     `mapstructure:"confidence_floor"`
}

// ITCConfig holds input tax credit engine settings.
type ITCConfig struct {
	ReclaimIgnoresDeadline bool `mapstructure:"reclaim_ignores_deadline"`
}

// ReportsConfig holds reconciliation report output settings.
type ReportsConfig struct {
	OutputDir string `mapstructure:"output_dir"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Load reads configuration from environment variables with the LEKHA_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("LEKHA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "lekha")
	v.SetDefault("db.password", "lekha_secret")
	v.SetDefault("db.name", "lekha_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Recon defaults (GSTN reconciliation conventions)
	v.SetDefault("recon.date_tolerance_days", 3)
	v.SetDefault("recon.amount_tolerance_pct", 1.0)
	v.SetDefault("recon.amount_tolerance_abs", 1.0)
	v.SetDefault("recon.confidence_floor", 70)

	// ITC defaults
	v.SetDefault("itc.reclaim_ignores_deadline", true)

	// Reports defaults
	v.SetDefault("reports.output_dir", "reports")

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"db.host":                      "LEKHA_DB_HOST",
		"db.port":                      "LEKHA_DB_PORT",
		"db.user":                      "LEKHA_DB_USER",
		"db.password":                  "LEKHA_DB_PASSWORD",
		"db.name":                      "LEKHA_DB_NAME",
		"db.sslmode":                   "LEKHA_DB_SSLMODE",
		"db.max_open":                  "LEKHA_DB_MAX_OPEN",
		"db.max_idle":                  "LEKHA_DB_MAX_IDLE",
		"recon.date_tolerance_days":    "LEKHA_RECON_DATE_TOLERANCE_DAYS",
		"recon.amount_tolerance_pct":   "LEKHA_RECON_AMOUNT_TOLERANCE_PCT",
		"recon.amount_tolerance_abs":   "LEKHA_RECON_AMOUNT_TOLERANCE_ABS",
		"recon.confidence_floor":       "LEKHA_RECON_CONFIDENCE_FLOOR",
		"itc.reclaim_ignores_deadline": "LEKHA_ITC_RECLAIM_IGNORES_DEADLINE",
		"reports.output_dir":           "LEKHA_REPORTS_OUTPUT_DIR",
		"log.level":                    "LEKHA_LOG_LEVEL",
		"log.format":                   "LEKHA_LOG_FORMAT",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Recon = ReconConfig{
		DateToleranceDays:  v.GetInt("recon.date_tolerance_days"),
		AmountTolerancePct: v.GetFloat64("recon.amount_tolerance_pct"),
		AmountToleranceAbs: v.GetFloat64("recon.amount_tolerance_abs"),
		ConfidenceFloor:    v.GetInt("recon.confidence_floor"),
	}
	cfg.ITC = ITCConfig{
		ReclaimIgnoresDeadline: v.GetBool("itc.reclaim_ignores_deadline"),
	}
	cfg.Reports = ReportsConfig{
		OutputDir: v.GetString("reports.output_dir"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}

	return cfg, nil
}
