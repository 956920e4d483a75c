package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	DB          DBConfig
	Source      SourceConfig
	S3          S3Config
	AI          AIConfig
	Audit       AuditConfig
	Batch       BatchConfig
	Readability ReadabilityConfig
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

// SourceConfig selects where documents are enumerated from.
type SourceConfig struct {
	// Backend is "local" or "s3".
	Backend string `mapstructure:"backend"`
	// Dir is the root directory holding provider subfolders (local backend).
	Dir string `mapstructure:"dir"`
}

// S3Config holds AWS S3 settings for the s3 source backend.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// AIConfig holds cross-extraction endpoint settings.
type AIConfig struct {
	APIKey        string `mapstructure:"api_key"`
	Model         string `mapstructure:"model"`
	BaseURL       string `mapstructure:"base_url"`
	MaxTokens     int    `mapstructure:"max_tokens"`
	TimeoutSecs   int    `mapstructure:"timeout_secs"`
	TruncateChars int    `mapstructure:"truncate_chars"`
	RateDelayMs   int    `mapstructure:"rate_delay_ms"`
}

// RateDelay returns the cooperative inter-call delay for the AI endpoint.
func (a *AIConfig) RateDelay() time.Duration {
	return time.Duration(a.RateDelayMs) * time.Millisecond
}

// AuditConfig holds reconciliation settings.
type AuditConfig struct {
	CostTolerance        float64 `mapstructure:"cost_tolerance"`
	ConsumptionTolerance float64 `mapstructure:"consumption_tolerance"`
	CachePath            string  `mapstructure:"cache_path"`
	ReportPath           string  `mapstructure:"report_path"`
	Force                bool    `mapstructure:"force"`
}

// BatchConfig holds batch processing settings.
type BatchConfig struct {
	Concurrency int `mapstructure:"concurrency"`
}

// ReadabilityConfig holds the readability gate settings.
type ReadabilityConfig struct {
	Threshold int `mapstructure:"threshold"`
}

// Load reads configuration from environment variables with the RACHUNKI_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("RACHUNKI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "rachunki")
	v.SetDefault("db.password", "rachunki_secret")
	v.SetDefault("db.name", "rachunki_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Source defaults
	v.SetDefault("source.backend", "local")
	v.SetDefault("source.dir", "./rachunki")

	// S3 defaults
	v.SetDefault("s3.region", "eu-central-1")
	v.SetDefault("s3.bucket", "rachunki-documents")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.prefix", "")

	// AI defaults
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.model", "google/gemini-2.0-flash-001")
	v.SetDefault("ai.base_url", "https://openrouter.ai/api/v1/chat/completions")
	v.SetDefault("ai.max_tokens", 500)
	v.SetDefault("ai.timeout_secs", 30)
	v.SetDefault("ai.truncate_chars", 8000)
	v.SetDefault("ai.rate_delay_ms", 300)

	// Audit defaults
	v.SetDefault("audit.cost_tolerance", 1.0)
	v.SetDefault("audit.consumption_tolerance", 5.0)
	v.SetDefault("audit.cache_path", "audit_validated.json")
	v.SetDefault("audit.report_path", "audit_report.json")
	v.SetDefault("audit.force", false)

	// Batch defaults
	v.SetDefault("batch.concurrency", 4)

	// Readability defaults
	v.SetDefault("readability.threshold", 3)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"db.host":                     "RACHUNKI_DB_HOST",
		"db.port":                     "RACHUNKI_DB_PORT",
		"db.user":                     "RACHUNKI_DB_USER",
		"db.password":                 "RACHUNKI_DB_PASSWORD",
		"db.name":                     "RACHUNKI_DB_NAME",
		"db.sslmode":                  "RACHUNKI_DB_SSLMODE",
		"db.max_open":                 "RACHUNKI_DB_MAX_OPEN",
		"db.max_idle":                 "RACHUNKI_DB_MAX_IDLE",
		"source.backend":              "RACHUNKI_SOURCE_BACKEND",
		"source.dir":                  "RACHUNKI_SOURCE_DIR",
		"s3.region":                   "RACHUNKI_S3_REGION",
		"s3.bucket":                   "RACHUNKI_S3_BUCKET",
		"s3.endpoint":                 "RACHUNKI_S3_ENDPOINT",
		"s3.access_key":               "RACHUNKI_S3_ACCESS_KEY",
		"s3.secret_key":               "RACHUNKI_S3_SECRET_KEY",
		"s3.prefix":                   "RACHUNKI_S3_PREFIX",
		"ai.api_key":                  "RACHUNKI_AI_API_KEY",
		"ai.model":                    "RACHUNKI_AI_MODEL",
		"ai.base_url":                 "RACHUNKI_AI_BASE_URL",
		"ai.max_tokens":               "RACHUNKI_AI_MAX_TOKENS",
		"ai.timeout_secs":             "RACHUNKI_AI_TIMEOUT_SECS",
		"ai.truncate_chars":           "RACHUNKI_AI_TRUNCATE_CHARS",
		"ai.rate_delay_ms":            "RACHUNKI_AI_RATE_DELAY_MS",
		"audit.cost_tolerance":        "RACHUNKI_AUDIT_COST_TOLERANCE",
		"audit.consumption_tolerance": "RACHUNKI_AUDIT_CONSUMPTION_TOLERANCE",
		"audit.cache_path":            "RACHUNKI_AUDIT_CACHE_PATH",
		"audit.report_path":           "RACHUNKI_AUDIT_REPORT_PATH",
		"audit.force":                 "RACHUNKI_AUDIT_FORCE",
		"batch.concurrency":           "RACHUNKI_BATCH_CONCURRENCY",
		"readability.threshold":       "RACHUNKI_READABILITY_THRESHOLD",
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
	cfg.Source = SourceConfig{
		Backend: v.GetString("source.backend"),
		Dir:     v.GetString("source.dir"),
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
		Prefix:    v.GetString("s3.prefix"),
	}
	cfg.AI = AIConfig{
		APIKey:        v.GetString("ai.api_key"),
		Model:         v.GetString("ai.model"),
		BaseURL:       v.GetString("ai.base_url"),
		MaxTokens:     v.GetInt("ai.max_tokens"),
		TimeoutSecs:   v.GetInt("ai.timeout_secs"),
		TruncateChars: v.GetInt("ai.truncate_chars"),
		RateDelayMs:   v.GetInt("ai.rate_delay_ms"),
	}
	cfg.Audit = AuditConfig{
		CostTolerance:        v.GetFloat64("audit.cost_tolerance"),
		ConsumptionTolerance: v.GetFloat64("audit.consumption_tolerance"),
		CachePath:            v.GetString("audit.cache_path"),
		ReportPath:           v.GetString("audit.report_path"),
		Force:                v.GetBool("audit.force"),
	}
	cfg.Batch = BatchConfig{
		Concurrency: v.GetInt("batch.concurrency"),
	}
	cfg.Readability = ReadabilityConfig{
		Threshold: v.GetInt("readability.threshold"),
	}

	return cfg, nil
}
